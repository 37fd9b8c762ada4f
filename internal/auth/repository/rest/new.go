package rest

import (
	"github.com/aakashsubedi/NoteSpace/internal/auth/repository"
	"github.com/aakashsubedi/NoteSpace/pkg/httpclient"
	pkgLog "github.com/aakashsubedi/NoteSpace/pkg/log"
)

type implRepository struct {
	client *httpclient.Client
	l      pkgLog.Logger
}

// New creates an auth repository talking to the backend through client.
func New(client *httpclient.Client, l pkgLog.Logger) repository.Repository {
	return &implRepository{
		client: client,
		l:      l,
	}
}
