package rest

import (
	"github.com/aakashsubedi/NoteSpace/internal/note/repository"
	"github.com/aakashsubedi/NoteSpace/pkg/httpclient"
	pkgLog "github.com/aakashsubedi/NoteSpace/pkg/log"
)

type implRepository struct {
	client *httpclient.Client
	l      pkgLog.Logger
}

// New creates the REST-backed note repository.
func New(client *httpclient.Client, l pkgLog.Logger) repository.Repository {
	return &implRepository{
		client: client,
		l:      l,
	}
}
