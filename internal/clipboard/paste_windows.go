// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows

package clipboard

import (
	"time"

	"github.com/micmonay/keybd_event"
)

// SendPaste synthesizes a Ctrl+V keystroke so the enhanced text lands
// directly in the focused window. The clipboard must already hold the text;
// the short sleep gives the clipboard owner time to settle before the
// keystroke fires.
func SendPaste() error {
	time.Sleep(80 * time.Millisecond)

	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	kb.HasCTRL(true)
	kb.SetKeys(keybd_event.VK_V)
	return kb.Launching()
}
