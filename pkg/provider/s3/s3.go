// Package s3 provides a file-system provider backed by an S3 bucket.
// Directories are represented by zero-byte marker objects with a trailing
// slash; listings use delimiter queries so no index is maintained.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/marmos91/bridgefs/pkg/wire"
)

// Config holds configuration for the S3 provider.
type Config struct {
	// Bucket is the S3 bucket name.
	Bucket string

	// Region is the AWS region (optional, uses SDK default if empty).
	Region string

	// Endpoint is the S3 endpoint URL (optional, for S3-compatible
	// services).
	Endpoint string

	// KeyPrefix is prepended to all object keys (e.g. "bridgefs/").
	// Should end with "/" if non-empty.
	KeyPrefix string

	// ForcePathStyle forces path-style addressing (required for
	// Localstack/MinIO).
	ForcePathStyle bool
}

// Provider serves files from an S3 bucket.
type Provider struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
}

// New creates a provider with an existing client.
func New(client *s3.Client, cfg Config) *Provider {
	return &Provider{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
	}
}

// NewFromConfig creates a provider by building an S3 client from config.
// This is the preferred constructor when you don't have an existing client.
func NewFromConfig(ctx context.Context, cfg Config) (*Provider, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return New(s3.NewFromConfig(awsCfg, s3Opts...), cfg), nil
}

// fileKey maps a provider path to the object key for a regular file.
func (p *Provider) fileKey(path string) string {
	return p.keyPrefix + strings.TrimPrefix(path, "/")
}

// dirKey maps a provider path to the marker key for a directory.
func (p *Provider) dirKey(path string) string {
	if path == "/" {
		return p.keyPrefix
	}
	return p.fileKey(path) + "/"
}

// mapError classifies an SDK failure. Missing objects become FileNotFound;
// access failures become NoPermissions; everything else is Unavailable so
// clients treat backend trouble as transient.
func mapError(path string, err error) *wire.ProviderError {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return wire.NewFileNotFound(path)
		case "AccessDenied":
			return wire.NewNoPermissions(fmt.Sprintf("access denied: %s", path))
		}
	}
	return wire.Errorf(wire.CodeUnavailable, "s3 backend error for %s: %v", path, err)
}

// head checks whether an object with the exact key exists.
func (p *Provider) head(ctx context.Context, key string) (*s3.HeadObjectOutput, error) {
	return p.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
}

// hasChildren reports whether any object lives under the given directory.
func (p *Provider) hasChildren(ctx context.Context, path string) (bool, error) {
	out, err := p.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(p.bucket),
		Prefix:  aws.String(p.dirKey(path)),
		MaxKeys: aws.Int32(2),
	})
	if err != nil {
		return false, mapError(path, err)
	}
	for _, obj := range out.Contents {
		if aws.ToString(obj.Key) != p.dirKey(path) {
			return true, nil
		}
	}
	return false, nil
}

// Stat implements provider.Provider.
func (p *Provider) Stat(ctx context.Context, path string) (wire.FileStat, error) {
	if path == "/" {
		return wire.FileStat{Type: wire.FileTypeDirectory}, nil
	}

	if out, err := p.head(ctx, p.fileKey(path)); err == nil {
		mtime := int64(0)
		if out.LastModified != nil {
			mtime = out.LastModified.UnixMilli()
		}
		return wire.FileStat{
			Type:  wire.FileTypeFile,
			Size:  uint64(aws.ToInt64(out.ContentLength)),
			CTime: mtime,
			MTime: mtime,
		}, nil
	}

	// Not a file; a directory exists if its marker does, or if anything
	// lives underneath it (markers are optional for externally written
	// buckets).
	if _, err := p.head(ctx, p.dirKey(path)); err == nil {
		return wire.FileStat{Type: wire.FileTypeDirectory}, nil
	}
	children, err := p.hasChildren(ctx, path)
	if err != nil {
		return wire.FileStat{}, err
	}
	if children {
		return wire.FileStat{Type: wire.FileTypeDirectory}, nil
	}

	return wire.FileStat{}, wire.NewFileNotFound(path)
}

// ReadDirectory implements provider.Provider.
func (p *Provider) ReadDirectory(ctx context.Context, path string) ([]wire.DirEntry, error) {
	if path != "/" {
		stat, err := p.Stat(ctx, path)
		if err != nil {
			return nil, err
		}
		if !stat.Type.IsDirectory() {
			return nil, wire.NewFileNotADirectory(path)
		}
	}

	prefix := p.dirKey(path)
	var entries []wire.DirEntry

	paginator := s3.NewListObjectsV2Paginator(p.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(p.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, mapError(path, err)
		}
		for _, cp := range page.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			entries = append(entries, wire.DirEntry{Name: name, Type: wire.FileTypeDirectory})
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if name == "" {
				continue // the directory marker itself
			}
			entries = append(entries, wire.DirEntry{Name: name, Type: wire.FileTypeFile})
		}
	}
	return entries, nil
}

// CreateDirectory implements provider.Provider. Writes a zero-byte marker.
func (p *Provider) CreateDirectory(ctx context.Context, path string) error {
	if _, err := p.Stat(ctx, path); err == nil {
		return wire.NewFileExists(path)
	}

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.dirKey(path)),
		Body:   bytes.NewReader(nil),
	})
	if err != nil {
		return mapError(path, err)
	}
	return nil
}

// ReadFile implements provider.Provider.
func (p *Provider) ReadFile(ctx context.Context, path string) ([]byte, error) {
	out, err := p.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.fileKey(path)),
	})
	if err != nil {
		return nil, mapError(path, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, wire.Errorf(wire.CodeUnavailable, "s3 read body for %s: %v", path, err)
	}
	return data, nil
}

// WriteFile implements provider.Provider.
func (p *Provider) WriteFile(ctx context.Context, path string, data []byte) error {
	if _, err := p.head(ctx, p.dirKey(path)); err == nil {
		return wire.NewFileIsADirectory(path)
	}

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.fileKey(path)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return mapError(path, err)
	}
	return nil
}

// Delete implements provider.Provider. UseTrash is ignored: S3 versioning,
// when enabled on the bucket, is the recovery mechanism.
func (p *Provider) Delete(ctx context.Context, path string, opts wire.DeleteOptions) error {
	stat, err := p.Stat(ctx, path)
	if err != nil {
		return err
	}

	if stat.Type.IsDirectory() {
		children, err := p.hasChildren(ctx, path)
		if err != nil {
			return err
		}
		if children && !opts.Recursive {
			return wire.NewDirectoryNotEmpty(path)
		}
		if err := p.deletePrefix(ctx, p.dirKey(path)); err != nil {
			return err
		}
		return nil
	}

	_, err = p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.fileKey(path)),
	})
	if err != nil {
		return mapError(path, err)
	}
	return nil
}

// deletePrefix removes every object under prefix, including the marker.
func (p *Provider) deletePrefix(ctx context.Context, prefix string) error {
	paginator := s3.NewListObjectsV2Paginator(p.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(p.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return mapError(prefix, err)
		}
		for _, obj := range page.Contents {
			_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(p.bucket),
				Key:    obj.Key,
			})
			if err != nil {
				return mapError(aws.ToString(obj.Key), err)
			}
		}
	}
	return nil
}

// Rename implements provider.Provider. S3 has no rename; regular files are
// copied server-side then deleted. Directory renames would need a full
// subtree rewrite and are rejected.
func (p *Provider) Rename(ctx context.Context, oldPath, newPath string, opts wire.RenameOptions) error {
	if err := p.Copy(ctx, oldPath, newPath, wire.CopyOptions{Overwrite: opts.Overwrite}); err != nil {
		return err
	}
	return p.Delete(ctx, oldPath, wire.DeleteOptions{})
}

// Copy implements provider.Provider using server-side CopyObject.
func (p *Provider) Copy(ctx context.Context, srcPath, dstPath string, opts wire.CopyOptions) error {
	stat, err := p.Stat(ctx, srcPath)
	if err != nil {
		return err
	}
	if stat.Type.IsDirectory() {
		return wire.NewFileIsADirectory(srcPath)
	}

	if !opts.Overwrite {
		if _, err := p.head(ctx, p.fileKey(dstPath)); err == nil {
			return wire.NewFileExists(dstPath)
		}
	}

	_, err = p.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(p.bucket),
		Key:        aws.String(p.fileKey(dstPath)),
		CopySource: aws.String(p.bucket + "/" + p.fileKey(srcPath)),
	})
	if err != nil {
		return mapError(srcPath, err)
	}
	return nil
}

// Close implements provider.Provider. The SDK client holds no resources
// that need explicit release.
func (p *Provider) Close() error {
	return nil
}
