// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/clstrctl/internal/cacheutil"
	"github.com/tfctl/clstrctl/internal/config"
	"github.com/tfctl/clstrctl/internal/log"
)

const s3Scheme = "s3://"

// ObjectClient is the part of the S3 client used to fetch reports.
type ObjectClient interface {
	HeadObject(ctx context.Context, params *s3v2.HeadObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// S3Location is a parsed s3://bucket/key URI.
type S3Location struct {
	Bucket string
	Key    string
}

// ParseS3URI splits s3://bucket/key. Both parts must be non-empty.
func ParseS3URI(uri string) (S3Location, error) {
	rest, ok := strings.CutPrefix(uri, s3Scheme)
	if !ok {
		return S3Location{}, fmt.Errorf("not an s3 uri: %s", uri)
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return S3Location{}, fmt.Errorf("s3 uri must be s3://bucket/key: %s", uri)
	}
	return S3Location{Bucket: bucket, Key: key}, nil
}

// NewS3FromConfig builds an S3 client from the shell's AWS setup, applying
// the s3.profile and s3.region config keys when set.
func NewS3FromConfig(ctx context.Context) (ObjectClient, error) {
	profile, _ := config.GetString("s3.profile", "")
	region, _ := config.GetString("s3.region", "")

	var loadOpts []func(*awscfg.LoadOptions) error
	if profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(profile))
	}
	if region != "" {
		loadOpts = append(loadOpts, awscfg.WithRegion(region))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	log.Debugf("s3 client created: profile=%s region=%s", profile, cfg.Region)
	return s3v2.NewFromConfig(cfg), nil
}

// objectCacheKey names one immutable revision of an object: its version id
// when the bucket is versioned, else its ETag. "" means the revision is
// unknown and the object must not be cached.
func objectCacheKey(uri string, versionID, etag *string) string {
	switch {
	case awsv2.ToString(versionID) != "":
		return uri + "?versionId=" + awsv2.ToString(versionID)
	case awsv2.ToString(etag) != "":
		return uri + "#" + awsv2.ToString(etag)
	}
	return ""
}

// openS3 fetches the whole object. The current revision is looked up first
// so the on-disk cache only ever serves the bytes of that revision.
func (o *Opener) openS3(ctx context.Context, uri string) (io.ReadCloser, error) {
	loc, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}

	if o.s3 == nil {
		newS3 := o.NewS3
		if newS3 == nil {
			newS3 = NewS3FromConfig
		}
		if o.s3, err = newS3(ctx); err != nil {
			return nil, err
		}
	}

	sub := []string{"s3", loc.Bucket}
	if cleanHours, _ := config.GetInt("cache.clean", 0); cleanHours > 0 {
		if err := cacheutil.Purge(cleanHours); err != nil {
			log.WithError(err).Warn("failed to purge cache")
		}
	}

	head, err := o.s3.HeadObject(ctx, &s3v2.HeadObjectInput{
		Bucket: awsv2.String(loc.Bucket),
		Key:    awsv2.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stat S3 object %s: %w", uri, err)
	}
	if key := objectCacheKey(uri, head.VersionId, head.ETag); key != "" {
		if entry, ok := cacheutil.Read(sub, key); ok {
			return io.NopCloser(bytes.NewReader(entry.Data)), nil
		}
	}

	in := &s3v2.GetObjectInput{
		Bucket: awsv2.String(loc.Bucket),
		Key:    awsv2.String(loc.Key),
	}
	if awsv2.ToString(head.VersionId) != "" {
		in.VersionId = head.VersionId
	}
	out, err := o.s3.GetObject(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object %s: %w", uri, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object %s: %w", uri, err)
	}

	// Key on what was actually fetched; the object may have changed since HEAD.
	if key := objectCacheKey(uri, out.VersionId, out.ETag); key != "" {
		if err := cacheutil.Write(sub, key, data); err != nil {
			log.WithError(err).Warn("failed to cache S3 object")
		}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
