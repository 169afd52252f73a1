package restdb

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseContentType(t *testing.T) {
	data := []struct {
		header  string
		want    ContentType
		wantErr bool
	}{
		{header: "", want: ContentTypeJSON},
		{header: "application/json", want: ContentTypeJSON},
		{header: "application/json; charset=utf-8", want: ContentTypeJSON},
		{header: "text/csv", want: ContentTypeCSV},
		{header: "multipart/form-data; boundary=xyz", want: ContentTypeFormData},
		{header: "application/x-www-form-urlencoded", want: ContentTypeURLEncoded},
		{header: "text/html", wantErr: true},
		{header: "application/xml", wantErr: true},
		{header: "not a media type", wantErr: true},
	}
	for idx, c := range data {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			got, ctParams, err := ParseContentType(c.header)
			if c.wantErr {
				if !errors.Is(err, ErrUnsupportedContentType) {
					t.Errorf("got %v want ErrUnsupportedContentType", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Errorf("got %v want %v", got, c.want)
			}
			if got == ContentTypeFormData && ctParams["boundary"] != "xyz" {
				t.Errorf("boundary not parsed: %v", ctParams)
			}
		})
	}
}
