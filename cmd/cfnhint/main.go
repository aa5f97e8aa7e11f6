// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"

	"github.com/walteh/cfn-hint/pkg/status"
)

func main() {
	os.Exit(int(run(context.Background(), os.Args[1:], streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})))
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, args []string, s streams) status.Code {
	code := status.CodeSuccess

	cmd := NewCommand(s, &code)
	cmd.SetArgs(args)
	cmd.SetIn(s.in)
	cmd.SetOut(s.out)
	cmd.SetErr(s.err)

	if err := cmd.ExecuteContext(ctx); err != nil {
		pterm.Error.WithWriter(s.err).Println(err.Error())
		return status.CodeGeneralFailure
	}

	return code
}
