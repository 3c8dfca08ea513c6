package items

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lucax88x/mpvtick/internal/command"
)

const connectTimeoutSeconds = 3

type curlData struct {
	key   string
	value string
}

// curlRequest builds the arguments of a curl invocation equivalent to
// curl --connect-timeout 3 --url URL [--user U] [--request R] [--data k=v ...].
type curlRequest struct {
	url     string
	user    string
	request string
	get     bool
	data    []curlData
}

func (r curlRequest) args() []string {
	args := []string{
		"--silent",
		"--show-error",
		"--connect-timeout", strconv.Itoa(connectTimeoutSeconds),
		"--url", r.url,
	}

	if r.user != "" {
		args = append(args, "--user", r.user)
	}

	if r.request != "" {
		args = append(args, "--request", r.request)
	}

	if r.get {
		args = append(args, "--get")
	}

	for _, d := range r.data {
		args = append(args, "--data-urlencode", fmt.Sprintf("%s=%s", d.key, d.value))
	}

	return args
}

func (r curlRequest) combined(ctx context.Context, runner command.Runner) (string, error) {
	return runner.Combined(ctx, "curl", r.args()...)
}

func (r curlRequest) output(ctx context.Context, runner command.Runner) (string, error) {
	return runner.Run(ctx, "curl", r.args()...)
}
