package ui

import (
	"github.com/C0okiegranny221/OSPROJECT/model"
	"github.com/C0okiegranny221/OSPROJECT/monitor"
)

// Messages

type snapshotMsg struct {
	snap    model.Snapshot
	host    monitor.HostStats
	hasHost bool
	seeded  bool
	seed    int64
	err     error
}

type statusMsg struct {
	text    string
	isError bool
}

// UI Modes

type uiMode int

const (
	normalMode uiMode = iota
	helpMode
	seedMode
)
