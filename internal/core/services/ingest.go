package services

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"source-registry-service/internal/archive"
	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/core/ports/output"
	"source-registry-service/internal/sbom"
)

// captureLimit bounds how much of a single lockfile is kept in memory
// while walking an archive.
const captureLimit = 16 << 20

type IngestService struct {
	artifacts ports.ArtifactRepository
	refs      ports.RefRepository
	sboms     ports.SbomRepository
}

func NewIngestService(artifacts ports.ArtifactRepository, refs ports.RefRepository, sboms ports.SbomRepository) *IngestService {
	return &IngestService{artifacts: artifacts, refs: refs, sboms: sboms}
}

// ChecksumTar consumes a stream and reports its digests without touching
// storage.
func (s *IngestService) ChecksumTar(r io.Reader, compression archive.Compression) (*archive.WalkResult, error) {
	return archive.Walk(r, archive.WalkOptions{Compression: compression})
}

// ImportTar ingests one archive stream: the file listing is stored under
// the inner digest, the outer digest becomes an alias, and captured
// lockfiles are registered as sboms.
func (s *IngestService) ImportTar(ctx context.Context, r io.Reader, compression archive.Compression) (*archive.WalkResult, error) {
	res, err := archive.Walk(r, archive.WalkOptions{
		Compression:  compression,
		Capture:      sbom.InterestingPath,
		CaptureLimit: captureLimit,
	})
	if err != nil {
		return nil, err
	}
	if err := s.store(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *IngestService) store(ctx context.Context, res *archive.WalkResult) error {
	inner := res.Inner.SHA256

	artifact := &domain.Artifact{Chksum: inner, Files: res.Files}
	if err := s.artifacts.Upsert(ctx, artifact); err != nil {
		return err
	}

	if outer := res.Outer.SHA256; outer != inner {
		alias := &domain.Alias{From: outer, To: inner}
		if err := s.artifacts.InsertAlias(ctx, alias); err != nil {
			return err
		}
	}

	for _, captured := range res.Captured {
		strain, ok := sbom.Detect(path.Base(captured.Path))
		if !ok {
			continue
		}
		record := &domain.Sbom{Chksum: captured.Digest, Strain: strain, Data: string(captured.Data)}
		if err := s.sboms.Insert(ctx, record); err != nil {
			return err
		}
		ref := &domain.SbomRef{
			ArchiveChksum: inner,
			SbomStrain:    strain,
			SbomChksum:    captured.Digest,
			Path:          captured.Path,
		}
		if err := s.sboms.InsertRef(ctx, ref); err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"chksum": inner,
		"files":  len(res.Files),
		"sboms":  len(res.Captured),
	}).Info("Imported artifact")
	return nil
}

// RecordRef attaches provenance to a checksum.
func (s *IngestService) RecordRef(ctx context.Context, ref *domain.Ref) error {
	logrus.WithFields(logrus.Fields{
		"chksum":  ref.Chksum,
		"vendor":  ref.Vendor,
		"package": ref.Package,
		"version": ref.Version,
	}).Info("Recording ref")
	return s.refs.Insert(ctx, ref)
}

// ImportRPM walks an rpm's members. Nested source archives are imported
// in full; every regular member gets a ref pointing at its checksum.
func (s *IngestService) ImportRPM(ctx context.Context, r io.Reader, vendor, pkg, version string) error {
	return archive.StreamRPM(ctx, r, func(tr *tar.Reader) error {
		for {
			hdr, err := tr.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read rpm member: %w", err)
			}
			if hdr.Typeflag != tar.TypeReg {
				continue
			}
			filename := path.Base(hdr.Name)
			if filename == "." || filename == "/" {
				continue
			}

			chksum, err := s.importMember(ctx, tr, filename)
			if err != nil {
				return err
			}

			ref := &domain.Ref{
				Chksum:   chksum,
				Vendor:   vendor,
				Package:  pkg,
				Version:  version,
				Filename: filename,
			}
			if err := s.RecordRef(ctx, ref); err != nil {
				return err
			}
		}
	})
}

func (s *IngestService) importMember(ctx context.Context, r io.Reader, filename string) (string, error) {
	compression, isArchive := archive.CompressionForFilename(filename)
	if !isArchive {
		digests, err := archive.HashReader(r)
		if err != nil {
			return "", err
		}
		return digests.SHA256, nil
	}

	// chromium tarballs are enormous; record the checksum but skip the import
	if strings.HasPrefix(filename, "chromium-") {
		res, err := s.ChecksumTar(r, compression)
		if err != nil {
			return "", err
		}
		return res.Outer.SHA256, nil
	}

	res, err := s.ImportTar(ctx, r, compression)
	if err != nil {
		return "", err
	}
	return res.Outer.SHA256, nil
}
