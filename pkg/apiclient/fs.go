package apiclient

import (
	"context"

	"github.com/marmos91/bridgefs/pkg/wire"
)

// Request bodies mirror the endpoint's handlers.

type uriRequest struct {
	URI wire.URI `json:"uri"`
}

type writeRequest struct {
	URI     wire.URI    `json:"uri"`
	Content wire.Buffer `json:"content"`
}

type deleteRequest struct {
	URI     wire.URI           `json:"uri"`
	Options wire.DeleteOptions `json:"options"`
}

type renameRequest struct {
	Source  wire.URI           `json:"source"`
	Target  wire.URI           `json:"target"`
	Options wire.RenameOptions `json:"options"`
}

type copyRequest struct {
	Source  wire.URI         `json:"source"`
	Target  wire.URI         `json:"target"`
	Options wire.CopyOptions `json:"options"`
}

// Stat implements fsclient.Proxy.
func (c *Client) Stat(ctx context.Context, uri wire.URI) (wire.FileStat, error) {
	var stat wire.FileStat
	if err := c.post(ctx, "/v1/fs/stat", uriRequest{URI: uri}, &stat); err != nil {
		return wire.FileStat{}, err
	}
	return stat, nil
}

// ReadDirectory implements fsclient.Proxy.
func (c *Client) ReadDirectory(ctx context.Context, uri wire.URI) ([]wire.DirEntry, error) {
	var entries []wire.DirEntry
	if err := c.post(ctx, "/v1/fs/readdir", uriRequest{URI: uri}, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateDirectory implements fsclient.Proxy.
func (c *Client) CreateDirectory(ctx context.Context, uri wire.URI) error {
	return c.post(ctx, "/v1/fs/mkdir", uriRequest{URI: uri}, nil)
}

// ReadFile implements fsclient.Proxy.
func (c *Client) ReadFile(ctx context.Context, uri wire.URI) (wire.Buffer, error) {
	var content wire.Buffer
	if err := c.post(ctx, "/v1/fs/read", uriRequest{URI: uri}, &content); err != nil {
		return wire.Buffer{}, err
	}
	return content, nil
}

// WriteFile implements fsclient.Proxy.
func (c *Client) WriteFile(ctx context.Context, uri wire.URI, content wire.Buffer) error {
	return c.post(ctx, "/v1/fs/write", writeRequest{URI: uri, Content: content}, nil)
}

// Delete implements fsclient.Proxy.
func (c *Client) Delete(ctx context.Context, uri wire.URI, opts wire.DeleteOptions) error {
	return c.post(ctx, "/v1/fs/delete", deleteRequest{URI: uri, Options: opts}, nil)
}

// Rename implements fsclient.Proxy.
func (c *Client) Rename(ctx context.Context, source, target wire.URI, opts wire.RenameOptions) error {
	return c.post(ctx, "/v1/fs/rename", renameRequest{Source: source, Target: target, Options: opts}, nil)
}

// Copy implements fsclient.Proxy.
func (c *Client) Copy(ctx context.Context, source, target wire.URI, opts wire.CopyOptions) error {
	return c.post(ctx, "/v1/fs/copy", copyRequest{Source: source, Target: target, Options: opts}, nil)
}

// Schemes lists the mounts the endpoint currently exposes. Callers use it
// to seed the facade's scheme registry.
func (c *Client) Schemes(ctx context.Context) ([]wire.SchemeInfo, error) {
	var infos []wire.SchemeInfo
	if err := c.get(ctx, "/v1/fs/schemes", &infos); err != nil {
		return nil, err
	}
	return infos, nil
}
