package cmd

import (
	"context"
	"errors"

	"github.com/harrison/lsf/internal/logger"
	"github.com/harrison/lsf/internal/record"
	"github.com/harrison/lsf/internal/shell"
	"github.com/harrison/lsf/internal/traverse"
)

// executingHandler prints each entry and then runs the --execute command on
// it. A command that fails is logged and the listing goes on.
type executingHandler struct {
	traverse.Handler
	ctx     context.Context
	command *shell.Command
	log     logger.Logger
}

func (h *executingHandler) Entry(rec *record.Record) error {
	if err := h.Handler.Entry(rec); err != nil {
		return err
	}
	err := h.command.Execute(h.ctx, rec.Path)
	var cerr *shell.CommandError
	if errors.As(err, &cerr) {
		h.log.LogError(cerr.Error())
		return nil
	}
	return err
}
