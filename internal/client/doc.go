// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive banking client runtime.
//
// It wires the terminal UI, the banking services, and the reset token
// cleanup worker into a single process lifecycle.
package client
