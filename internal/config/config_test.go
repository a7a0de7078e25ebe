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

package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseFlags(t *testing.T) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := &Flags{}
	BindFlags(fs, f)
	require.NoError(t, fs.Parse(nil))
	return f
}

func TestLoadRequiresMarimoImage(t *testing.T) {
	f := baseFlags(t)
	_, err := Load(f)
	assert.Error(t, err)
}

func TestLoadDefaultsServiceDNS(t *testing.T) {
	f := baseFlags(t)
	f.MarimoImage = "marimo:latest"

	cfg, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, RunnerStatusServiceDNS, cfg.RunnerStatus.Method)
	assert.Equal(t, 10*time.Second, cfg.RunnerStatus.Interval)
}

func TestLoadIngressRequiresHost(t *testing.T) {
	f := baseFlags(t)
	f.MarimoImage = "marimo:latest"
	f.RunnerStatusMethod = string(RunnerStatusIngress)

	_, err := Load(f)
	assert.Error(t, err)

	f.RunnerStatusHost = "runners.example.com"
	cfg, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, RunnerStatusIngress, cfg.RunnerStatus.Method)
	assert.Equal(t, "runners.example.com", cfg.RunnerStatus.Host)
}

func TestLoadEnvOverlayWins(t *testing.T) {
	f := baseFlags(t)
	f.MarimoImage = "marimo:latest"
	t.Setenv("KUBIMO_MARIMO_IMAGE", "marimo:overlaid")
	t.Setenv("KUBIMO_RUNNER_STATUS__INTERVAL_SECS", "30")

	cfg, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, "marimo:overlaid", cfg.MarimoImage)
	assert.Equal(t, 30*time.Second, cfg.RunnerStatus.Interval)
}

func TestLoadRunnerHostsRejectsIP(t *testing.T) {
	f := baseFlags(t)
	f.MarimoImage = "marimo:latest"
	f.RunnerHosts = "runner.example.com,10.0.0.1"

	_, err := Load(f)
	assert.Error(t, err)
}

func TestLoadRunnerHostsSplitsAndTrims(t *testing.T) {
	f := baseFlags(t)
	f.MarimoImage = "marimo:latest"
	f.RunnerHosts = "a.example.com, b.example.com ,c.example.com"

	cfg, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.example.com", "b.example.com", "c.example.com"}, cfg.RunnerHosts)
}
