package services

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"source-registry-service/internal/archive"
	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/sbom"
	"source-registry-service/internal/testutil"
)

type tarMember struct {
	name string
	body []byte
}

func buildTarball(t *testing.T, members []tarMember) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, m := range members {
		hdr := &tar.Header{
			Name:     m.name,
			Mode:     0o644,
			Size:     int64(len(m.body)),
			Typeflag: tar.TypeReg,
		}
		require.NoError(t, tw.WriteHeader(hdr))
		_, err := tw.Write(m.body)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func TestImportTar(t *testing.T) {
	artifacts := new(testutil.MockArtifactRepo)
	refs := new(testutil.MockRefRepo)
	sboms := new(testutil.MockSbomRepo)
	svc := NewIngestService(artifacts, refs, sboms)

	lock := []byte("[[package]]\nname = \"anyhow\"\nversion = \"1.0.75\"\n")
	tarBytes := buildTarball(t, []tarMember{{name: "pkg-1.0/Cargo.lock", body: lock}})

	want, err := archive.HashReader(bytes.NewReader(tarBytes))
	require.NoError(t, err)
	lockChksum := archive.SHA256Hex(lock)

	artifacts.On("Upsert", mock.Anything, mock.MatchedBy(func(a *domain.Artifact) bool {
		return a.Chksum == want.SHA256 && len(a.Files) == 1
	})).Return(nil)
	sboms.On("Insert", mock.Anything, &domain.Sbom{
		Chksum: lockChksum,
		Strain: sbom.StrainCargo,
		Data:   string(lock),
	}).Return(nil)
	sboms.On("InsertRef", mock.Anything, &domain.SbomRef{
		ArchiveChksum: want.SHA256,
		SbomStrain:    sbom.StrainCargo,
		SbomChksum:    lockChksum,
		Path:          "pkg-1.0/Cargo.lock",
	}).Return(nil)

	res, err := svc.ImportTar(context.Background(), bytes.NewReader(tarBytes), archive.CompressionNone)
	require.NoError(t, err)

	// uncompressed input: no alias gets written
	assert.Equal(t, want, res.Inner)
	assert.Equal(t, want, res.Outer)
	artifacts.AssertExpectations(t)
	sboms.AssertExpectations(t)
}

func TestImportTarGzipWritesAlias(t *testing.T) {
	artifacts := new(testutil.MockArtifactRepo)
	refs := new(testutil.MockRefRepo)
	sboms := new(testutil.MockSbomRepo)
	svc := NewIngestService(artifacts, refs, sboms)

	tarBytes := buildTarball(t, []tarMember{{name: "pkg-1.0/hello.txt", body: []byte("hello world")}})
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write(tarBytes)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	wantInner, err := archive.HashReader(bytes.NewReader(tarBytes))
	require.NoError(t, err)
	wantOuter, err := archive.HashReader(bytes.NewReader(gz.Bytes()))
	require.NoError(t, err)

	artifacts.On("Upsert", mock.Anything, mock.MatchedBy(func(a *domain.Artifact) bool {
		return a.Chksum == wantInner.SHA256
	})).Return(nil)
	artifacts.On("InsertAlias", mock.Anything, &domain.Alias{
		From: wantOuter.SHA256,
		To:   wantInner.SHA256,
	}).Return(nil)

	res, err := svc.ImportTar(context.Background(), bytes.NewReader(gz.Bytes()), archive.CompressionGzip)
	require.NoError(t, err)
	assert.Equal(t, wantOuter, res.Outer)
	artifacts.AssertExpectations(t)
}

func TestChecksumTarTouchesNothing(t *testing.T) {
	artifacts := new(testutil.MockArtifactRepo)
	refs := new(testutil.MockRefRepo)
	sboms := new(testutil.MockSbomRepo)
	svc := NewIngestService(artifacts, refs, sboms)

	tarBytes := buildTarball(t, []tarMember{{name: "pkg-1.0/hello.txt", body: []byte("hello world")}})
	want, err := archive.HashReader(bytes.NewReader(tarBytes))
	require.NoError(t, err)

	res, err := svc.ChecksumTar(bytes.NewReader(tarBytes), archive.CompressionAuto)
	require.NoError(t, err)
	assert.Equal(t, want, res.Inner)

	artifacts.AssertExpectations(t)
	refs.AssertExpectations(t)
	sboms.AssertExpectations(t)
}

func TestImportRPM(t *testing.T) {
	if _, err := exec.LookPath("bsdtar"); err != nil {
		t.Skip("bsdtar not installed")
	}

	artifacts := new(testutil.MockArtifactRepo)
	refs := new(testutil.MockRefRepo)
	sboms := new(testutil.MockSbomRepo)
	svc := NewIngestService(artifacts, refs, sboms)

	spec := []byte("Name: pkg\nVersion: 1.0\n")
	nested := buildTarball(t, []tarMember{{name: "pkg-1.0/main.c", body: []byte("int main;")}})
	rpmContents := buildTarball(t, []tarMember{
		{name: "pkg/pkg.spec", body: spec},
		{name: "pkg/pkg-1.0.tar", body: nested},
	})

	nestedDigests, err := archive.HashReader(bytes.NewReader(nested))
	require.NoError(t, err)

	artifacts.On("Upsert", mock.Anything, mock.MatchedBy(func(a *domain.Artifact) bool {
		return a.Chksum == nestedDigests.SHA256
	})).Return(nil)
	refs.On("Insert", mock.Anything, &domain.Ref{
		Chksum:   archive.SHA256Hex(spec),
		Vendor:   "fedora",
		Package:  "pkg",
		Version:  "1.0",
		Filename: "pkg.spec",
	}).Return(nil)
	refs.On("Insert", mock.Anything, &domain.Ref{
		Chksum:   nestedDigests.SHA256,
		Vendor:   "fedora",
		Package:  "pkg",
		Version:  "1.0",
		Filename: "pkg-1.0.tar",
	}).Return(nil)

	err = svc.ImportRPM(context.Background(), bytes.NewReader(rpmContents), "fedora", "pkg", "1.0")
	require.NoError(t, err)
	artifacts.AssertExpectations(t)
	refs.AssertExpectations(t)
}
