package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/testutil"
)

func TestArtifactServiceGet(t *testing.T) {
	artifacts := new(testutil.MockArtifactRepo)
	refs := new(testutil.MockRefRepo)
	sboms := new(testutil.MockSbomRepo)
	svc := NewArtifactService(artifacts, refs, sboms)

	stored := &domain.Artifact{Chksum: "sha256:aaaa"}
	artifacts.On("GetAlias", mock.Anything, "sha256:aaaa").Return(nil, domain.ErrAliasNotFound)
	artifacts.On("Get", mock.Anything, "sha256:aaaa").Return(stored, nil)

	artifact, alias, err := svc.Get(context.Background(), "sha256:aaaa")
	require.NoError(t, err)
	assert.Equal(t, stored, artifact)
	assert.Nil(t, alias)
	artifacts.AssertExpectations(t)
}

func TestArtifactServiceGetThroughAlias(t *testing.T) {
	artifacts := new(testutil.MockArtifactRepo)
	refs := new(testutil.MockRefRepo)
	sboms := new(testutil.MockSbomRepo)
	svc := NewArtifactService(artifacts, refs, sboms)

	stored := &domain.Artifact{Chksum: "sha256:inner"}
	artifacts.On("GetAlias", mock.Anything, "sha256:outer").
		Return(&domain.Alias{From: "sha256:outer", To: "sha256:inner"}, nil)
	artifacts.On("Get", mock.Anything, "sha256:inner").Return(stored, nil)

	artifact, alias, err := svc.Get(context.Background(), "sha256:outer")
	require.NoError(t, err)
	assert.Equal(t, "sha256:inner", artifact.Chksum)
	require.NotNil(t, alias)
	assert.Equal(t, "sha256:inner", alias.To)
	artifacts.AssertExpectations(t)
}

func TestArtifactServiceGetNotFound(t *testing.T) {
	artifacts := new(testutil.MockArtifactRepo)
	refs := new(testutil.MockRefRepo)
	sboms := new(testutil.MockSbomRepo)
	svc := NewArtifactService(artifacts, refs, sboms)

	artifacts.On("GetAlias", mock.Anything, "sha256:miss").Return(nil, domain.ErrAliasNotFound)
	artifacts.On("Get", mock.Anything, "sha256:miss").Return(nil, domain.ErrArtifactNotFound)

	_, _, err := svc.Get(context.Background(), "sha256:miss")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestArtifactServiceView(t *testing.T) {
	artifacts := new(testutil.MockArtifactRepo)
	refs := new(testutil.MockRefRepo)
	sboms := new(testutil.MockSbomRepo)
	svc := NewArtifactService(artifacts, refs, sboms)

	stored := &domain.Artifact{
		Chksum: "sha256:aaaa",
		Files: []domain.FileEntry{
			{Path: "pkg-1.0/"},
			{Digest: "sha256:bbbb", Path: "pkg-1.0/configure"},
			{Digest: "sha256:cccc", Path: "pkg-1.0/configure.ac"},
		},
	}
	artifacts.On("GetAlias", mock.Anything, "sha256:aaaa").Return(nil, domain.ErrAliasNotFound)
	artifacts.On("Get", mock.Anything, "sha256:aaaa").Return(stored, nil)
	refs.On("ListForArtifact", mock.Anything, "sha256:aaaa").Return([]domain.Ref{
		{Chksum: "sha256:aaaa", Vendor: "fedora", Package: "pkg", Version: "1.0"},
	}, nil)
	sboms.On("ListRefsForArchive", mock.Anything, "sha256:aaaa").Return([]domain.SbomRef{}, nil)

	view, err := svc.View(context.Background(), "sha256:aaaa")
	require.NoError(t, err)

	assert.Equal(t, "sha256:aaaa", view.Chksum)
	assert.True(t, view.SuspectingAutotools)
	assert.Contains(t, view.Listing, "sha256:bbbb")
	assert.Contains(t, view.Listing, "pkg-1.0/configure.ac")
	assert.Len(t, view.Refs, 1)
	artifacts.AssertExpectations(t)
	refs.AssertExpectations(t)
	sboms.AssertExpectations(t)
}

func TestArtifactServiceDiff(t *testing.T) {
	artifacts := new(testutil.MockArtifactRepo)
	refs := new(testutil.MockRefRepo)
	sboms := new(testutil.MockSbomRepo)
	svc := NewArtifactService(artifacts, refs, sboms)

	a := &domain.Artifact{Chksum: "sha256:aaaa", Files: []domain.FileEntry{
		{Digest: "sha256:1111", Path: "pkg-1.0/main.c"},
	}}
	b := &domain.Artifact{Chksum: "sha256:dddd", Files: []domain.FileEntry{
		{Digest: "sha256:2222", Path: "pkg-1.1/main.c"},
	}}
	artifacts.On("GetAlias", mock.Anything, "sha256:aaaa").Return(nil, domain.ErrAliasNotFound)
	artifacts.On("GetAlias", mock.Anything, "sha256:dddd").Return(nil, domain.ErrAliasNotFound)
	artifacts.On("Get", mock.Anything, "sha256:aaaa").Return(a, nil)
	artifacts.On("Get", mock.Anything, "sha256:dddd").Return(b, nil)

	view, err := svc.Diff(context.Background(), "sha256:aaaa", "sha256:dddd", true, false)
	require.NoError(t, err)

	assert.Equal(t, "sha256:aaaa", view.From)
	assert.Equal(t, "sha256:dddd", view.To)
	assert.True(t, view.Sorted)
	assert.False(t, view.Trimmed)
	assert.Contains(t, view.Diff, "--- sha256:aaaa")
	assert.Contains(t, view.Diff, "+++ sha256:dddd")
	assert.Contains(t, view.Diff, "pkg-1.1/main.c")
}

func TestArtifactServiceDiffTrimmed(t *testing.T) {
	artifacts := new(testutil.MockArtifactRepo)
	refs := new(testutil.MockRefRepo)
	sboms := new(testutil.MockSbomRepo)
	svc := NewArtifactService(artifacts, refs, sboms)

	a := &domain.Artifact{Chksum: "sha256:aaaa", Files: []domain.FileEntry{
		{Digest: "sha256:1111", Path: "pkg-1.0/main.c"},
	}}
	b := &domain.Artifact{Chksum: "sha256:dddd", Files: []domain.FileEntry{
		{Digest: "sha256:1111", Path: "pkg-1.1/main.c"},
	}}
	artifacts.On("GetAlias", mock.Anything, "sha256:aaaa").Return(nil, domain.ErrAliasNotFound)
	artifacts.On("GetAlias", mock.Anything, "sha256:dddd").Return(nil, domain.ErrAliasNotFound)
	artifacts.On("Get", mock.Anything, "sha256:aaaa").Return(a, nil)
	artifacts.On("Get", mock.Anything, "sha256:dddd").Return(b, nil)

	view, err := svc.Diff(context.Background(), "sha256:aaaa", "sha256:dddd", true, true)
	require.NoError(t, err)

	// with the version directory trimmed the listings are identical
	assert.Empty(t, view.Diff)
	assert.True(t, view.Trimmed)
}

func TestDetectAutotools(t *testing.T) {
	tests := []struct {
		name  string
		files []domain.FileEntry
		want  bool
	}{
		{
			name: "generated configure next to configure.ac",
			files: []domain.FileEntry{
				{Path: "pkg-1.0/configure"},
				{Path: "pkg-1.0/configure.ac"},
			},
			want: true,
		},
		{
			name: "order does not matter",
			files: []domain.FileEntry{
				{Path: "pkg-1.0/configure.ac"},
				{Path: "pkg-1.0/configure"},
			},
			want: true,
		},
		{
			name: "different directories",
			files: []domain.FileEntry{
				{Path: "pkg-1.0/configure"},
				{Path: "pkg-1.0/sub/configure.ac"},
			},
			want: false,
		},
		{
			name: "configure alone",
			files: []domain.FileEntry{
				{Path: "pkg-1.0/configure"},
			},
			want: false,
		},
		{
			name:  "no files",
			files: nil,
			want:  false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, detectAutotools(tc.files))
		})
	}
}
