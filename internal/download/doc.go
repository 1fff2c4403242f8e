// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package download fetches remote files to local paths.
//
// A Downloader resolves the output location, skips files that are already
// present and optionally decompresses the result. The transfer itself is
// delegated to a Fetcher: Curl shells out to curl, Getter downloads
// in-process with go-getter.
package download
