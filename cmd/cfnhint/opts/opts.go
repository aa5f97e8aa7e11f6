package opts

import (
	"io"

	"github.com/walteh/cfn-hint/pkg/config"
	"github.com/walteh/cfn-hint/pkg/log"
	"github.com/walteh/cfn-hint/pkg/source"
	"github.com/walteh/cfn-hint/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	Stdin      bool      // read one document from In instead of Config.Inputs
	In         io.Reader // stdin stream
	Console    *log.Console
	UserLogger *status.UserLogger
	Resolver   *source.Resolver
}
