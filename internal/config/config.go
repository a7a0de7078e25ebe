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

// Package config loads Kubimo's KUBIMO_-prefixed environment configuration
// on top of the flag defaults main.go binds, following the teacher's
// flag.StringVar/flag.DurationVar idiom plus a thin env-var overlay.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// RunnerStatusMethod selects how the runner-status reconciler resolves a
// runner's polling endpoint.
type RunnerStatusMethod string

const (
	RunnerStatusServiceDNS RunnerStatusMethod = "ServiceDns"
	RunnerStatusIngress    RunnerStatusMethod = "Ingress"
)

// Config is the fully resolved set of KUBIMO_ environment values, read once
// at startup.
type Config struct {
	// ManagerName is the prefix of the manager's leader-election ID
	// (ManagerName + "-lease"). Server-side apply calls are made under
	// cluster.FieldManager; this value does not change it.
	ManagerName string

	// MarimoImage is the notebook-runtime container image run in every
	// Runner pod.
	MarimoImage string

	// BusyboxImage is the utility image used by the Workspace init Job's
	// init-dirs init-container.
	BusyboxImage string

	// IndexerImage is the container image running the indexer binary
	// (cmd/indexer), used by both the Workspace's long-lived indexer pod
	// and the CacheJob's indexer container. Not part of the distilled
	// §6 table; added because both pods need a concrete image to run.
	IndexerImage string

	// IngressClassName is the default ingress class stamped on every Runner
	// Ingress, unless the Runner spec overrides it.
	IngressClassName string

	// RunnerHosts is the validated list of configured ingress hostnames.
	// The Runner reconciler does not read it: an Ingress rule's host comes
	// only from the Runner's spec.ingress.tls.hosts.
	RunnerHosts []string

	// ClusterIssuer is the configured cert-manager issuer name. The Runner
	// reconciler does not read it: the cluster-issuer annotation comes only
	// from the Runner's spec.ingress.tls.clusterIssuer.
	ClusterIssuer string

	RunnerStatus RunnerStatusConfig
}

// RunnerStatusConfig configures the runner-status reconciler's polling
// endpoint resolution.
type RunnerStatusConfig struct {
	Method   RunnerStatusMethod
	Host     string
	Interval time.Duration
}

// Flags mirrors Config with flag.Value-compatible fields, bound with
// flag.StringVar/flag.DurationVar in main.go the way the teacher binds its
// own command-line flags, then overlaid with KUBIMO_* environment values by
// Load.
type Flags struct {
	ManagerName              string
	MarimoImage              string
	BusyboxImage             string
	IndexerImage             string
	IngressClassName         string
	RunnerHosts              string
	ClusterIssuer            string
	RunnerStatusMethod       string
	RunnerStatusHost         string
	RunnerStatusIntervalSecs time.Duration
}

// BindFlags registers every Kubimo configuration flag against fs with the
// defaults a bare install needs, mirroring the teacher's flag.StringVar
// calls in main.go.
func BindFlags(fs *flag.FlagSet, f *Flags) {
	fs.StringVar(&f.ManagerName, "manager-name", "kubimo-controller", "Prefix of the leader-election ID (<name>-lease).")
	fs.StringVar(&f.MarimoImage, "marimo-image", "", "Notebook-runtime container image.")
	fs.StringVar(&f.BusyboxImage, "busybox-image", "busybox:1.36", "Utility image for the Workspace init-dirs init-container.")
	fs.StringVar(&f.IndexerImage, "indexer-image", "", "Container image running the indexer binary.")
	fs.StringVar(&f.IngressClassName, "ingress-class-name", "nginx", "Default ingress class.")
	fs.StringVar(&f.RunnerHosts, "runner-hosts", "", "Comma-separated ingress hostnames. Must be DNS names, not IPs.")
	fs.StringVar(&f.ClusterIssuer, "cluster-issuer", "", "Optional cert-manager issuer name.")
	fs.StringVar(&f.RunnerStatusMethod, "runner-status-method", string(RunnerStatusServiceDNS), "ServiceDns or Ingress.")
	fs.StringVar(&f.RunnerStatusHost, "runner-status-host", "", "Required iff runner-status-method is Ingress.")
	fs.DurationVar(&f.RunnerStatusIntervalSecs, "runner-status-interval", 10*time.Second, "Polling interval for runner connection counts.")
}

// envPrefix is the KUBIMO_ prefix every overlaid environment variable
// carries.
const envPrefix = "KUBIMO_"

// Load resolves the final Config from f, overlaying any KUBIMO_* variable
// present in the environment on top of the flag-bound value, and validates
// the result against §6's invariants (RunnerStatus.Host required iff
// Method is Ingress, RunnerHosts must be DNS names).
func Load(f *Flags) (*Config, error) {
	overlayString(&f.ManagerName, "MANAGER_NAME")
	overlayString(&f.MarimoImage, "MARIMO_IMAGE")
	overlayString(&f.BusyboxImage, "BUSYBOX_IMAGE")
	overlayString(&f.IndexerImage, "INDEXER_IMAGE")
	overlayString(&f.IngressClassName, "INGRESS_CLASS_NAME")
	overlayString(&f.RunnerHosts, "RUNNER_HOSTS")
	overlayString(&f.ClusterIssuer, "CLUSTER_ISSUER")
	overlayString(&f.RunnerStatusMethod, "RUNNER_STATUS__METHOD")
	overlayString(&f.RunnerStatusHost, "RUNNER_STATUS__HOST")
	if err := overlayDurationSecs(&f.RunnerStatusIntervalSecs, "RUNNER_STATUS__INTERVAL_SECS"); err != nil {
		return nil, err
	}

	if f.MarimoImage == "" {
		return nil, errors.New("config: MARIMO_IMAGE is required")
	}

	method := RunnerStatusMethod(f.RunnerStatusMethod)
	switch method {
	case RunnerStatusServiceDNS:
	case RunnerStatusIngress:
		if f.RunnerStatusHost == "" {
			return nil, errors.New("config: RUNNER_STATUS__HOST is required when RUNNER_STATUS__METHOD=Ingress")
		}
	default:
		return nil, errors.Errorf("config: unknown RUNNER_STATUS__METHOD %q", f.RunnerStatusMethod)
	}

	hosts, err := splitHosts(f.RunnerHosts)
	if err != nil {
		return nil, err
	}

	return &Config{
		ManagerName:      f.ManagerName,
		MarimoImage:      f.MarimoImage,
		BusyboxImage:     f.BusyboxImage,
		IndexerImage:     f.IndexerImage,
		IngressClassName: f.IngressClassName,
		RunnerHosts:      hosts,
		ClusterIssuer:    f.ClusterIssuer,
		RunnerStatus: RunnerStatusConfig{
			Method:   method,
			Host:     f.RunnerStatusHost,
			Interval: f.RunnerStatusIntervalSecs,
		},
	}, nil
}

func overlayString(dst *string, key string) {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		*dst = v
	}
}

func overlayDurationSecs(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return nil
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return errors.Wrapf(err, "config: %s%s must be an integer number of seconds", envPrefix, key)
	}
	*dst = time.Duration(secs) * time.Second
	return nil
}

// splitHosts parses a comma-separated hostname list, rejecting anything
// that looks like an IP literal per §6's "must be DNS names, not IPs".
func splitHosts(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	hosts := make([]string, 0, len(parts))
	for _, p := range parts {
		h := strings.TrimSpace(p)
		if h == "" {
			continue
		}
		if looksLikeIP(h) {
			return nil, fmt.Errorf("config: RUNNER_HOSTS entry %q looks like an IP address, not a DNS name", h)
		}
		hosts = append(hosts, h)
	}
	return hosts, nil
}

func looksLikeIP(host string) bool {
	segs := strings.Split(host, ".")
	if len(segs) != 4 {
		return false
	}
	for _, s := range segs {
		if _, err := strconv.Atoi(s); err != nil {
			return false
		}
	}
	return true
}
