/*


Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package podcmd builds the argv Kubimo's Runner and CacheJob pods run,
// mirroring the teacher's preference for a small typed helper over ad hoc
// string concatenation.
package podcmd

// Mode is the notebook server's final positional argument.
type Mode string

const (
	ModeEdit  Mode = "edit"
	ModeRun   Mode = "run"
	ModeCache Mode = "cache"
)

// Command accumulates "bash /setup/start.sh [flags...] <mode>" argv, in the
// order the notebook-runtime entrypoint expects.
type Command struct {
	baseURL  string
	token    string
	logLevel string
	mode     Mode
}

// New starts a Command for basePath, the ingress path the runner or cache
// job is reachable under.
func New(basePath string, mode Mode) *Command {
	return &Command{baseURL: basePath, mode: mode}
}

// WithToken sets the --token flag when token is non-empty.
func (c *Command) WithToken(token string) *Command {
	c.token = token
	return c
}

// WithLogLevel sets the --log-level flag when level is non-empty.
func (c *Command) WithLogLevel(level string) *Command {
	c.logLevel = level
	return c
}

// Args renders the final argv: bash /setup/start.sh --base-url <path>
// [--token <t>] [--log-level <L>] (edit|run|cache).
func (c *Command) Args() []string {
	args := []string{"bash", "/setup/start.sh", "--base-url", c.baseURL}
	if c.token != "" {
		args = append(args, "--token", c.token)
	}
	if c.logLevel != "" {
		args = append(args, "--log-level", c.logLevel)
	}
	return append(args, string(c.mode))
}
