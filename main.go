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

package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	kubimov1 "github.com/aqora-io/kubimo/api/v1"
	"github.com/aqora-io/kubimo/controllers/cachejob"
	"github.com/aqora-io/kubimo/controllers/runner"
	"github.com/aqora-io/kubimo/controllers/runnerstatus"
	"github.com/aqora-io/kubimo/controllers/workspace"
	"github.com/aqora-io/kubimo/controllers/workspacedirectory"
	"github.com/aqora-io/kubimo/internal/config"
	"github.com/aqora-io/kubimo/internal/metrics"
	"github.com/aqora-io/kubimo/internal/pkg/cluster"
	"github.com/aqora-io/kubimo/internal/telemetry"
	// +kubebuilder:scaffold:imports
)

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("kubimo")
)

func init() {
	_ = clientgoscheme.AddToScheme(scheme)
	_ = kubimov1.AddToScheme(scheme)
	// +kubebuilder:scaffold:scheme
}

func main() {
	var loggerOpts zap.Options
	var metricsAddr string
	var healthProbeAddr string
	var enableLeaderElection bool
	var f config.Flags

	flag.StringVar(&metricsAddr, "metrics-addr", ":8080", "The address the metric endpoint binds to.")
	flag.StringVar(&healthProbeAddr, "health-probe-addr", ":8081", "The address the health probe endpoint binds to.")
	flag.BoolVar(&enableLeaderElection, "enable-leader-election", false,
		"Enable leader election for the controller manager. "+
			"Enabling this will ensure there is only one active controller manager.")
	config.BindFlags(flag.CommandLine, &f)
	loggerOpts.BindFlags(flag.CommandLine)
	flag.Parse()

	encoderOpts := func(o *zap.Options) {
		o.EncoderConfigOptions = append(o.EncoderConfigOptions, func(ec *zapcore.EncoderConfig) {
			ec.TimeKey = "timestamp"
			ec.EncodeTime = zapcore.RFC3339NanoTimeEncoder
		})
	}
	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&loggerOpts), zap.StacktraceLevel(zapcore.PanicLevel), encoderOpts))

	cfg, err := config.Load(&f)
	if err != nil {
		fatal(err, "invalid configuration")
	}

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme:                 scheme,
		Metrics:                metricsserver.Options{BindAddress: metricsAddr},
		HealthProbeBindAddress: healthProbeAddr,
		LeaderElection:         enableLeaderElection,
		LeaderElectionID:       cfg.ManagerName + "-lease",
	})
	if err != nil {
		fatal(err, "unable to start manager")
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		fatal(err, "unable to set up health check")
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		fatal(err, "unable to set up ready check")
	}

	metrics.Register()

	telemetryShutdown, err := telemetry.Install(context.Background(), "kubimo")
	if err != nil {
		fatal(err, "unable to setup telemetry exporter")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = telemetryShutdown(shutdownCtx)
	}()

	cl := cluster.New(mgr.GetClient())

	setupLog.Info("starting workspace controller")
	if err := workspace.SetupWithManager(mgr, cl, cfg); err != nil {
		fatal(err, "failed to register workspace reconciler")
	}
	setupLog.Info("starting runner controller")
	if err := runner.SetupWithManager(mgr, cl, cfg); err != nil {
		fatal(err, "failed to register runner reconciler")
	}
	setupLog.Info("starting runner-status controller")
	if err := runnerstatus.SetupWithManager(mgr, cl, cfg); err != nil {
		fatal(err, "failed to register runner-status reconciler")
	}
	setupLog.Info("starting cachejob controller")
	if err := cachejob.SetupWithManager(mgr, cl, cfg); err != nil {
		fatal(err, "failed to register cachejob reconciler")
	}
	setupLog.Info("starting workspacedirectory controller")
	if err := workspacedirectory.SetupWithManager(mgr, cl); err != nil {
		fatal(err, "failed to register workspacedirectory reconciler")
	}

	// +kubebuilder:scaffold:builder

	ctx := ctrl.SetupSignalHandler()

	setupLog.Info("starting manager")
	if err := mgr.Start(ctx); err != nil {
		setupLog.Error(err, "manager exited with error")
		os.Exit(2)
	}
	setupLog.Info("shutdown complete")
}

func fatal(err error, msg string) {
	setupLog.Error(err, msg)
	os.Exit(1)
}
