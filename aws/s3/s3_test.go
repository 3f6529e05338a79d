package s3

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		url    string
		bucket string
		key    string
		err    bool
	}{
		{url: "s3://tvc/TVC_ALS_201609.txt", bucket: "tvc", key: "TVC_ALS_201609.txt"},
		{url: "s3://tvc/als/2016/09/TVC_ALS_201609.txt.gz", bucket: "tvc", key: "als/2016/09/TVC_ALS_201609.txt.gz"},
		{url: "s3://tvc", err: true},
		{url: "s3://tvc/", err: true},
		{url: "s3:///key", err: true},
		{url: "https://tvc/key", err: true},
	}
	for _, tst := range tests {
		t.Run(tst.url, func(t *testing.T) {
			bucket, key, err := ParseURL(tst.url)
			if tst.err {
				if err == nil {
					t.Fatalf("expected error, got %s %s", bucket, key)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsing: %v", err)
			}
			if bucket != tst.bucket || key != tst.key {
				t.Fatalf("got %q %q, expected %q %q", bucket, key, tst.bucket, tst.key)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	const listing = "X[m] Y[m]\n1 2\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/tvc/als/TVC_ALS_201609.txt" {
			http.Error(w, "<Error><Code>NoSuchKey</Code></Error>", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(listing))
	}))
	defer srv.Close()

	local := &aws.Config{
		Endpoint:         aws.String(srv.URL),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(true),
		Credentials:      credentials.NewStaticCredentials("id", "secret", ""),
	}

	obj, err := Open("", "s3://tvc/als/TVC_ALS_201609.txt", local)
	if err != nil {
		t.Fatalf("opening: %v", err)
	}
	defer obj.Close()
	if obj.Name() != "als/TVC_ALS_201609.txt" {
		t.Fatalf("name: %q", obj.Name())
	}
	got, err := ioutil.ReadAll(obj)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if string(got) != listing {
		t.Fatalf("got %q, expected %q", got, listing)
	}

	if obj, err := Open("", "s3://tvc/missing.txt", local); err == nil {
		obj.Close()
		t.Fatalf("expected error for a missing key")
	}
	if _, err := Open("", "s3://tvc", local); err == nil {
		t.Fatalf("expected error for a URL without a key")
	}
}
