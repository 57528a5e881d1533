package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"纯日期", `"1965-08-01"`, time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC), false},
		{"日期时间", `"1965-08-01T10:30:00"`, time.Date(1965, 8, 1, 10, 30, 0, 0, time.UTC), false},
		{"RFC3339", `"1965-08-01T10:30:00Z"`, time.Date(1965, 8, 1, 10, 30, 0, 0, time.UTC), false},
		{"RFC3339带毫秒", `"1965-08-01T10:30:00.123Z"`, time.Date(1965, 8, 1, 10, 30, 0, 123000000, time.UTC), false},
		{"格式错误", `"01/08/1965"`, time.Time{}, true},
		{"空字符串", `""`, time.Time{}, true},
		{"非字符串", `19650801`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time), "got %s", d.Time)
		})
	}
}

func TestDate_NullLeavesPointerNil(t *testing.T) {
	var req BookRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Dune","publicationDate":null}`), &req))
	assert.Nil(t, req.PublicationDate)
}

func TestDate_MarshalJSON(t *testing.T) {
	d := Date{time.Date(1965, 8, 1, 23, 59, 0, 0, time.UTC)}
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1965-08-01"`, string(raw))
}

func TestBookRequest_Decode(t *testing.T) {
	body := `{"title":"Dune","publicationDate":"1965-08-01","isbn":"9780441013593","authorName":"Frank Herbert"}`

	var req BookRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Equal(t, "Dune", req.Title)
	require.NotNil(t, req.PublicationDate)
	assert.Equal(t, "1965-08-01", req.PublicationDate.Format(DateLayout))
	assert.Equal(t, "9780441013593", req.ISBN)
	assert.Equal(t, "Frank Herbert", req.AuthorName)
}

func TestBookRequest_PublishedAt(t *testing.T) {
	var req BookRequest
	assert.True(t, req.PublishedAt().IsZero())

	req.PublicationDate = &Date{time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 1965, req.PublishedAt().Year())
}
