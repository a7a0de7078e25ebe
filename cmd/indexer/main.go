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

// Command indexer runs the per-workspace directory indexer (§4.7) as a
// sidecar process: it walks a workspace's mounted root, mirrors file
// content into object storage and publishes WorkspaceDirectory resources
// describing what it found.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	kubimov1 "github.com/aqora-io/kubimo/api/v1"
	"github.com/aqora-io/kubimo/internal/indexer"
	"github.com/aqora-io/kubimo/internal/pkg/cluster"
)

func main() {
	var cfg indexer.Config
	var debounceMs, pollMs int
	var excludeHidden bool

	flag.StringVar(&cfg.Namespace, "namespace", "", "Namespace the workspace's resources live in (defaults to the pod's own namespace).")
	flag.StringVar(&cfg.Bucket, "bucket", os.Getenv("AWS_BUCKET"), "S3 bucket content is mirrored into.")
	flag.StringVar(&cfg.KeyPrefix, "key-prefix", os.Getenv("AWS_KEY_PREFIX"), "Key prefix prepended to every uploaded object.")
	flag.BoolVar(&cfg.UploadContent, "upload-content", false, "Upload full file content to object storage, not just directory listings.")
	flag.BoolVar(&excludeHidden, "exclude-hidden", false, "Skip dotfiles and dot-directories while walking.")
	flag.BoolVar(&cfg.IncludeGitIgnored, "include-gitignored", false, "Walk files .gitignore would otherwise exclude.")
	flag.BoolVar(&cfg.Watch, "watch", false, "Keep running and re-index on filesystem change instead of exiting after one pass.")
	flag.IntVar(&debounceMs, "watch-debounce-millis", 500, "Debounce window collapsing a burst of filesystem events into one re-index.")
	flag.IntVar(&pollMs, "watch-poll-millis", 60000, "Idle timer period of the --watch loop; a re-index runs only after filesystem events.")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: indexer [flags] <workspace-name> [directory]")
		os.Exit(2)
	}
	cfg.Workspace = args[0]
	cfg.Root = "."
	if len(args) > 1 {
		cfg.Root = args[1]
	}
	cfg.IncludeHidden = !excludeHidden
	cfg.WatchOptions = indexer.WatchOptions{DebounceMs: debounceMs, PollMs: pollMs}

	logger, err := zap.NewProduction(zap.AddCaller())
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to build logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	if cfg.Bucket == "" {
		log.Fatal("--bucket (or AWS_BUCKET) is required")
	}
	if cfg.Namespace == "" {
		ns, err := cluster.Namespace()
		if err != nil {
			log.Fatalw("--namespace not set and pod namespace could not be detected", "error", err)
		}
		cfg.Namespace = ns
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalw("unable to load AWS configuration", "error", err)
	}
	store := indexer.NewStore(s3.NewFromConfig(awsCfg))

	scheme := runtime.NewScheme()
	if err := clientgoscheme.AddToScheme(scheme); err != nil {
		log.Fatalw("unable to register client-go scheme", "error", err)
	}
	if err := kubimov1.AddToScheme(scheme); err != nil {
		log.Fatalw("unable to register kubimo scheme", "error", err)
	}
	kubeCfg, err := ctrl.GetConfig()
	if err != nil {
		log.Fatalw("unable to load kubeconfig", "error", err)
	}
	kubeClient, err := client.New(kubeCfg, client.Options{Scheme: scheme})
	if err != nil {
		log.Fatalw("unable to build kubernetes client", "error", err)
	}
	cl := cluster.New(kubeClient)

	ix := indexer.New(cfg, cl, store)
	if err := ix.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalw("indexer exited with error", "error", err)
	}
	log.Info("indexer shut down cleanly")
}
