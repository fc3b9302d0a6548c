// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source opens the inputs named on the command line: local files,
// standard input ("-") and s3://bucket/key objects. Gzip-compressed inputs
// (".gz") are decompressed transparently. S3 objects are cached on disk via
// cacheutil.
package source
