// Copyright 2017 Pilosa Corp.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

// Package s3 opens LiDAR listings stored as S3 objects.
package s3

import (
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
)

// Scheme prefixes the URLs this package opens.
const Scheme = "s3://"

// DefaultRegion is used when no region is given.
const DefaultRegion = "us-east-1"

// ParseURL splits s3://bucket/key into bucket and key.
func ParseURL(url string) (bucket, key string, err error) {
	if !strings.HasPrefix(url, Scheme) {
		return "", "", errors.Errorf("%q is not an s3 URL", url)
	}
	rest := strings.TrimPrefix(url, Scheme)
	i := strings.Index(rest, "/")
	if i <= 0 || i == len(rest)-1 {
		return "", "", errors.Errorf("%q needs both a bucket and a key", url)
	}
	return rest[:i], rest[i+1:], nil
}

// Object is the body of an S3 object being read.
type Object struct {
	name string
	body io.ReadCloser
}

func (o *Object) Read(buf []byte) (n int, err error) {
	return o.body.Read(buf)
}

func (o *Object) Close() error {
	return o.body.Close()
}

// Name returns the object's key.
func (o *Object) Name() string {
	return o.name
}

// Open fetches the object at url, which must have the form s3://bucket/key.
// Credentials come from the usual AWS environment and config files. Any cfgs
// are applied on top of the region, e.g. to point at a different endpoint.
func Open(region, url string, cfgs ...*aws.Config) (*Object, error) {
	bucket, key, err := ParseURL(url)
	if err != nil {
		return nil, err
	}
	if region == "" {
		region = DefaultRegion
	}
	cfgs = append([]*aws.Config{{Region: aws.String(region)}}, cfgs...)
	sess, err := session.NewSession(cfgs...)
	if err != nil {
		return nil, errors.Wrap(err, "getting new session")
	}
	result, err := s3.New(sess).GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %v", url)
	}
	return &Object{name: key, body: result.Body}, nil
}
