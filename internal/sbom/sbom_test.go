package sbom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"source-registry-service/internal/core/domain"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		strain   string
		ok       bool
	}{
		{"Cargo.lock", StrainCargo, true},
		{"package-lock.json", StrainNpmPackageLock, true},
		{"go.sum", StrainGoSum, true},
		{"yarn.lock", StrainYarn, true},
		{"pnpm-lock.yaml", StrainPnpm, true},
		{"Gemfile.lock", "", false},
		{"cargo.lock", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.filename, func(t *testing.T) {
			strain, ok := Detect(tc.filename)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.strain, strain)
		})
	}
}

func TestInterestingPath(t *testing.T) {
	assert.True(t, InterestingPath("pkg-1.0/Cargo.lock"))
	assert.True(t, InterestingPath("pkg-1.0/vendor/web/pnpm-lock.yaml"))
	assert.True(t, InterestingPath("go.sum"))
	assert.False(t, InterestingPath("pkg-1.0/README.md"))
	assert.False(t, InterestingPath("pkg-1.0/Cargo.toml"))
}

func TestPackagesUnknownStrain(t *testing.T) {
	_, err := Packages("gemfile", "")
	assert.ErrorIs(t, err, domain.ErrUnknownSbomStrain)
}

func TestPackagesCargo(t *testing.T) {
	data := `# This file is automatically @generated by Cargo.
version = 3

[[package]]
name = "anyhow"
version = "1.0.75"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "a4668cab20f66d8d020e1fbc0ebe47217433c1b6c8f2040faf858554e394ace6"

[[package]]
name = "demo"
version = "0.1.0"
dependencies = [
 "anyhow",
]
`
	pkgs, err := Packages(StrainCargo, data)
	require.NoError(t, err)
	assert.Equal(t, []Package{
		{Name: "anyhow", Version: "1.0.75", Checksum: "a4668cab20f66d8d020e1fbc0ebe47217433c1b6c8f2040faf858554e394ace6"},
		{Name: "demo", Version: "0.1.0"},
	}, pkgs)
}

func TestPackagesCargoInvalid(t *testing.T) {
	_, err := Packages(StrainCargo, "[[package]\nbroken")
	assert.Error(t, err)
}

func TestPackagesPackageLock(t *testing.T) {
	data := `{
  "name": "demo",
  "version": "1.0.0",
  "lockfileVersion": 3,
  "packages": {
    "": {"name": "demo", "version": "1.0.0"},
    "node_modules/@babel/core": {"version": "7.23.2", "integrity": "sha512-n7s51eWdaWZ3vGT2tD4T7J6eJs3QoBXydv7vkUM06Bf1cbVD2Kc2UrkzhiQwobfV7NwOnQXYL7UBJ5VPU+RGoQ=="},
    "node_modules/debug": {"version": "4.3.4"},
    "node_modules/debug/node_modules/ms": {"version": "2.1.2"}
  }
}`
	pkgs, err := Packages(StrainNpmPackageLock, data)
	require.NoError(t, err)
	assert.Equal(t, []Package{
		{Name: "@babel/core", Version: "7.23.2", Checksum: "sha512-n7s51eWdaWZ3vGT2tD4T7J6eJs3QoBXydv7vkUM06Bf1cbVD2Kc2UrkzhiQwobfV7NwOnQXYL7UBJ5VPU+RGoQ=="},
		{Name: "debug", Version: "4.3.4"},
		{Name: "ms", Version: "2.1.2"},
	}, pkgs)
}

func TestPackagesGoSum(t *testing.T) {
	data := `github.com/gin-gonic/gin v1.10.0 h1:nTuyha1TYqgedzytsKYqna+DfLos46nTv2ygFy86HFU=
github.com/gin-gonic/gin v1.10.0/go.mod h1:4PMNQiOhvDRa013RKVbsiNwoyezlm2rm0uX/T7kzp5Y=
golang.org/x/crypto v0.23.0 h1:dIJU/v2J8Mdglj/8rJ6UUOM3Zc9zLZxVZwwxMooUSAI=
golang.org/x/crypto v0.23.0/go.mod h1:CKFgDieR+mRhux2Lsu27y0fO304Db0wZe70UKqHu0v8=
`
	pkgs, err := Packages(StrainGoSum, data)
	require.NoError(t, err)
	assert.Equal(t, []Package{
		{Name: "github.com/gin-gonic/gin", Version: "v1.10.0", Checksum: "h1:nTuyha1TYqgedzytsKYqna+DfLos46nTv2ygFy86HFU="},
		{Name: "golang.org/x/crypto", Version: "v0.23.0", Checksum: "h1:dIJU/v2J8Mdglj/8rJ6UUOM3Zc9zLZxVZwwxMooUSAI="},
	}, pkgs)
}

func TestPackagesYarn(t *testing.T) {
	data := `# THIS IS AN AUTOGENERATED FILE. DO NOT EDIT THIS FILE DIRECTLY.
# yarn lockfile v1


"@babel/code-frame@^7.0.0", "@babel/code-frame@^7.22.13":
  version "7.22.13"
  resolved "https://registry.yarnpkg.com/@babel/code-frame/-/code-frame-7.22.13.tgz"
  integrity sha512-XktuhWlJ5g+3TJXc5upd9Ks1HutSArik6jf2eAjYFyIOf4ej3RN+184cZbzDvbPnuTJIUhPKKJE3cIsYTiAT3w==

ms@2.1.2:
  version "2.1.2"
  resolved "https://registry.yarnpkg.com/ms/-/ms-2.1.2.tgz"
`
	pkgs, err := Packages(StrainYarn, data)
	require.NoError(t, err)
	assert.Equal(t, []Package{
		{Name: "@babel/code-frame", Version: "7.22.13", Checksum: "sha512-XktuhWlJ5g+3TJXc5upd9Ks1HutSArik6jf2eAjYFyIOf4ej3RN+184cZbzDvbPnuTJIUhPKKJE3cIsYTiAT3w=="},
		{Name: "ms", Version: "2.1.2"},
	}, pkgs)
}

func TestPackagesPnpm(t *testing.T) {
	data := `lockfileVersion: '6.0'

packages:

  /@babel/helper-string-parser@7.22.5:
    resolution: {integrity: sha512-mM4COjgZox8U+JcXQwPijIZLElkgEpO5rsERVDJTc2qfCDfERyob6k5WegS14SX18IIjv+XD+GrqNumY5JRCDw==}
    engines: {node: '>=6.9.0'}

  /use-sync-external-store@1.2.0(react@18.2.0):
    resolution: {integrity: sha512-eEgnFxGQ1Ife9bzYs6VLi8/4X6CObHMw9Qr9tPY43iKwsPw8xE8+EFsf/2cFZ5S3esXgpWgtSCtLNS41F+sKPA==}
`
	pkgs, err := Packages(StrainPnpm, data)
	require.NoError(t, err)
	assert.Equal(t, []Package{
		{Name: "@babel/helper-string-parser", Version: "7.22.5", Checksum: "sha512-mM4COjgZox8U+JcXQwPijIZLElkgEpO5rsERVDJTc2qfCDfERyob6k5WegS14SX18IIjv+XD+GrqNumY5JRCDw=="},
		{Name: "use-sync-external-store", Version: "1.2.0", Checksum: "sha512-eEgnFxGQ1Ife9bzYs6VLi8/4X6CObHMw9Qr9tPY43iKwsPw8xE8+EFsf/2cFZ5S3esXgpWgtSCtLNS41F+sKPA=="},
	}, pkgs)
}

func TestSplitPnpmKey(t *testing.T) {
	tests := []struct {
		key     string
		name    string
		version string
		ok      bool
	}{
		{"/accepts@1.3.8", "accepts", "1.3.8", true},
		{"accepts@1.3.8", "accepts", "1.3.8", true},
		{"/@babel/core@7.23.2", "@babel/core", "7.23.2", true},
		{"/@babel/core/7.0.0", "@babel/core", "7.0.0", true},
		{"/use-sync-external-store@1.2.0(react@18.2.0)", "use-sync-external-store", "1.2.0", true},
		{"garbage", "", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			name, version, ok := splitPnpmKey(tc.key)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.name, name)
			assert.Equal(t, tc.version, version)
		})
	}
}
