// Copyright (c) 2015-2025 MinIO, Inc.
//
// This file is part of MinIO Object Storage stack
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bucketctl/bucketctl/pkg/probe"
	"github.com/joho/godotenv"
	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/s3utils"
	"github.com/minio/pkg/v3/env"
	"github.com/mitchellh/go-homedir"
	yaml "gopkg.in/yaml.v2"
)

// Environment variables understood by bucketctl, compatible with the
// variables used by existing upload scripts.
const (
	envEndpoint  = "MINIO_ENDPOINT"
	envAccessKey = "MINIO_ACCESS_KEY"
	envSecretKey = "MINIO_SECRET_KEY"
	envBucket    = "MINIO_BUCKET_NAME"
	envRegion    = "MINIO_REGION"
	envSecure    = "MINIO_SECURE"
	envLookup    = "MINIO_API_LOOKUP"
)

// storeConfig is the on-disk layout of the YAML configuration file. All
// values are strings so that every layer is merged the same way.
type storeConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region,omitempty"`
	Secure    string `yaml:"secure,omitempty"`
	Lookup    string `yaml:"lookup,omitempty"`
}

func defaultStoreConfig() storeConfig {
	return storeConfig{Secure: "true", Lookup: "auto"}
}

// merge overlays every non-empty value of o.
func (s *storeConfig) merge(o storeConfig) {
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&s.Endpoint, o.Endpoint},
		{&s.AccessKey, o.AccessKey},
		{&s.SecretKey, o.SecretKey},
		{&s.Bucket, o.Bucket},
		{&s.Region, o.Region},
		{&s.Secure, o.Secure},
		{&s.Lookup, o.Lookup},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
}

// mustGetConfigPath returns the default configuration file location.
func mustGetConfigPath() string {
	dir, e := homedir.Dir()
	if e != nil {
		return filepath.Join(globalConfigDir, globalConfigFile)
	}
	return filepath.Join(dir, globalConfigDir, globalConfigFile)
}

// loadConfigFile reads the YAML file at path. A missing file is only an
// error when the path was given explicitly.
func loadConfigFile(path string, explicit bool) (storeConfig, *probe.Error) {
	var sc storeConfig
	expanded, e := homedir.Expand(path)
	if e != nil {
		return sc, errConfig("Unable to expand config file path `%s`: %w", path, e)
	}
	data, e := os.ReadFile(expanded)
	if e != nil {
		if errors.Is(e, fs.ErrNotExist) && !explicit {
			return sc, nil
		}
		return sc, errConfig("Unable to read config file `%s`: %w", path, e)
	}
	if e = yaml.Unmarshal(data, &sc); e != nil {
		return sc, errConfig("Unable to parse config file `%s`: %w", path, e)
	}
	return sc, nil
}

// loadEnvFile reads a dotenv file without touching the process
// environment. A missing file is only an error when given explicitly.
func loadEnvFile(path string, explicit bool) (map[string]string, *probe.Error) {
	values, e := godotenv.Read(path)
	if e != nil {
		if errors.Is(e, fs.ErrNotExist) && !explicit {
			return map[string]string{}, nil
		}
		return nil, errConfig("Unable to read env file `%s`: %w", path, e)
	}
	return values, nil
}

// envStoreConfig resolves the MINIO_* variables, the process environment
// wins over the dotenv values.
func envStoreConfig(dotenv map[string]string) storeConfig {
	get := func(key string) string {
		return strings.TrimSpace(env.Get(key, dotenv[key]))
	}
	return storeConfig{
		Endpoint:  get(envEndpoint),
		AccessKey: get(envAccessKey),
		SecretKey: get(envSecretKey),
		Bucket:    get(envBucket),
		Region:    get(envRegion),
		Secure:    get(envSecure),
		Lookup:    get(envLookup),
	}
}

// loadConfig resolves the store configuration from, lowest precedence
// first, defaults, the YAML config file, the dotenv file and the
// environment, and validates the result.
func loadConfig(configFile, envFile string) (*Config, *probe.Error) {
	sc := defaultStoreConfig()

	explicit := configFile != ""
	if !explicit {
		configFile = mustGetConfigPath()
	}
	fileConfig, err := loadConfigFile(configFile, explicit)
	if err != nil {
		return nil, err.Trace(configFile)
	}
	sc.merge(fileConfig)

	explicit = envFile != ""
	if !explicit {
		envFile = globalEnvFile
	}
	dotenv, err := loadEnvFile(envFile, explicit)
	if err != nil {
		return nil, err.Trace(envFile)
	}
	sc.merge(envStoreConfig(dotenv))

	return sc.toConfig()
}

// toConfig validates the merged values.
func (s storeConfig) toConfig() (*Config, *probe.Error) {
	for _, required := range []struct{ name, value string }{
		{envEndpoint, s.Endpoint},
		{envAccessKey, s.AccessKey},
		{envSecretKey, s.SecretKey},
		{envBucket, s.Bucket},
	} {
		if required.value == "" {
			return nil, errConfig("%s is not set. Set it in the environment, a .env file or %s.", required.name, mustGetConfigPath())
		}
	}

	secure, e := strconv.ParseBool(s.Secure)
	if e != nil {
		return nil, errConfig("Invalid %s value `%s`: %w", envSecure, s.Secure, e)
	}

	endpoint, secure, err := parseEndpoint(s.Endpoint, secure)
	if err != nil {
		return nil, err.Trace(s.Endpoint)
	}

	if e = s3utils.CheckValidBucketNameStrict(s.Bucket); e != nil {
		return nil, errConfig("Invalid bucket name `%s`: %w", s.Bucket, e)
	}

	lookup, err := parseLookup(s.Lookup)
	if err != nil {
		return nil, err.Trace(s.Lookup)
	}

	return &Config{
		Endpoint:  endpoint,
		AccessKey: s.AccessKey,
		SecretKey: s.SecretKey,
		Bucket:    s.Bucket,
		Region:    s.Region,
		Secure:    secure,
		Lookup:    lookup,
	}, nil
}

// parseEndpoint accepts a bare host[:port] or a URL, in which case the
// scheme decides whether TLS is used.
func parseEndpoint(endpoint string, secure bool) (string, bool, *probe.Error) {
	if !strings.Contains(endpoint, "://") {
		if strings.Contains(endpoint, "/") {
			return "", false, errConfig("Endpoint `%s` should be of the form host[:port] without a path.", endpoint)
		}
		return endpoint, secure, nil
	}
	u, e := url.Parse(endpoint)
	if e != nil {
		return "", false, errConfig("Invalid endpoint `%s`: %w", endpoint, e)
	}
	switch u.Scheme {
	case "http":
		secure = false
	case "https":
		secure = true
	default:
		return "", false, errConfig("Endpoint `%s` has unsupported scheme `%s`.", endpoint, u.Scheme)
	}
	if u.Host == "" || (u.Path != "" && u.Path != "/") || u.RawQuery != "" {
		return "", false, errConfig("Endpoint `%s` should be of the form scheme://host[:port]/ without resource component.", endpoint)
	}
	return u.Host, secure, nil
}

func parseLookup(lookup string) (minio.BucketLookupType, *probe.Error) {
	switch strings.ToLower(lookup) {
	case "", "auto":
		return minio.BucketLookupAuto, nil
	case "dns":
		return minio.BucketLookupDNS, nil
	case "path":
		return minio.BucketLookupPath, nil
	}
	return minio.BucketLookupAuto, errConfig("Unknown %s value `%s`, valid options are [auto, dns, path].", envLookup, lookup)
}
