package tui

import "github.com/UlviDemirsoy/JavaReflection/internal/usecase/browse"

type listStateMsg struct {
	state browse.CollectionListState
}

type detailStateMsg struct {
	state browse.CollectionDetailState
}

type exportDoneMsg struct {
	id  string
	err error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

// streamClosedMsg ends the state listener when the program shuts down.
type streamClosedMsg struct{}
