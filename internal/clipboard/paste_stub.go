// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows

package clipboard

import "errors"

// SendPaste is only implemented on Windows; elsewhere auto-paste is refused
// and the text stays on the clipboard.
func SendPaste() error {
	return errors.New("auto-paste not supported on this platform")
}
