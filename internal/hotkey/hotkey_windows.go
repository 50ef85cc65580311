// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows

package hotkey

import (
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procRegisterHotKey   = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey = user32.NewProc("UnregisterHotKey")
	procGetMessageW      = user32.NewProc("GetMessageW")
	procPostThreadMsgW   = user32.NewProc("PostThreadMessageW")
)

const (
	wmHotkey = 0x0312
	wmQuit   = 0x0012

	hotkeyID = 1
)

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	PtX     int32
	PtY     int32
}

// winListener receives WM_HOTKEY on a dedicated, locked OS thread.
// RegisterHotKey ties the registration to the registering thread's message
// queue, so registration, the message loop, and unregistration all happen on
// that one goroutine.
type winListener struct {
	combo  Combo
	events chan Event

	mu       sync.Mutex
	threadID uint32
	closed   bool
}

// Listen registers the combination as a global hotkey and starts the message
// loop. The OS suppresses auto-repeat for RegisterHotKey-style hotkeys only
// partially; the dispatcher's rate limiter absorbs the rest.
func Listen(combo Combo) (Listener, error) {
	l := &winListener{
		combo:  combo,
		events: make(chan Event, 8),
	}

	errCh := make(chan error, 1)
	go l.run(errCh)

	select {
	case err := <-errCh:
		if err != nil {
			return nil, err
		}
		return l, nil
	case <-time.After(2 * time.Second):
		return nil, fmt.Errorf("timeout registering hotkey %q", combo.Spec)
	}
}

func (l *winListener) run(errCh chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	l.mu.Lock()
	l.threadID = windows.GetCurrentThreadId()
	l.mu.Unlock()

	r, _, _ := procRegisterHotKey.Call(0, hotkeyID, uintptr(l.combo.Mods), uintptr(l.combo.Key))
	if r == 0 {
		errCh <- fmt.Errorf("RegisterHotKey failed for %q (already in use by another application?)", l.combo.Spec)
		return
	}
	defer procUnregisterHotKey.Call(0, hotkeyID)
	defer close(l.events)

	errCh <- nil

	var m msg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(ret) {
		case -1, 0: // error or WM_QUIT
			return
		}
		if m.Message == wmHotkey && m.WParam == hotkeyID {
			// Non-blocking send: if the daemon is busy, dropping a
			// burst event is better than stalling the message loop.
			select {
			case l.events <- Event{Combo: l.combo.Spec, Pressed: true}:
			default:
			}
		}
	}
}

func (l *winListener) Events() <-chan Event {
	return l.events
}

func (l *winListener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	if l.threadID != 0 {
		procPostThreadMsgW.Call(uintptr(l.threadID), wmQuit, 0, 0)
	}
	return nil
}
