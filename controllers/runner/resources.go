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

package runner

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	kubimov1 "github.com/aqora-io/kubimo/api/v1"
	"github.com/aqora-io/kubimo/internal/pkg/labels"
	"github.com/aqora-io/kubimo/internal/pkg/podcmd"
	"github.com/aqora-io/kubimo/internal/pkg/quantity"
)

const runnerContainerPort = 80

func ingressPath(rn *kubimov1.Runner) string {
	if rn.Spec.Ingress != nil && rn.Spec.Ingress.Path != "" {
		return rn.Spec.Ingress.Path
	}
	return "/" + percentEncode(rn.Name)
}

func healthPath(pathPrefix string, cmd kubimov1.RunnerCommand) string {
	if cmd == kubimov1.RunnerCommandRun {
		return pathPrefix + "/_health"
	}
	return pathPrefix + "/health"
}

func podMode(cmd kubimov1.RunnerCommand) podcmd.Mode {
	if cmd == kubimov1.RunnerCommandRun {
		return podcmd.ModeRun
	}
	return podcmd.ModeEdit
}

// reconcilePod ensures the notebook-server Pod: gvisor runtime class,
// fsGroup=1000, PVC mounted at /home/me, container port 80 named "marimo",
// start/liveness probes and the podcmd argv (§4.4).
func (r *Reconciler) reconcilePod(ctx context.Context, rn *kubimov1.Runner) error {
	fsGroup := int64(1000)
	gvisor := "gvisor"
	automount := false

	path := ingressPath(rn)
	cmd := podcmd.New(path, podMode(rn.Spec.Command)).WithToken(rn.Spec.Token).WithLogLevel(rn.Spec.LogLevel)
	health := healthPath(path, rn.Spec.Command)

	probe := &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{Path: health, Port: intstr.FromInt(runnerContainerPort)},
		},
	}
	startup := *probe
	startup.FailureThreshold = 90
	startup.PeriodSeconds = 1
	liveness := *probe
	liveness.PeriodSeconds = 10

	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: rn.Name, Namespace: rn.Namespace, Labels: labels.Name(rn.Name)},
		Spec: corev1.PodSpec{
			RuntimeClassName:             &gvisor,
			AutomountServiceAccountToken: &automount,
			SecurityContext:              &corev1.PodSecurityContext{FSGroup: &fsGroup},
			Containers: []corev1.Container{{
				Name:    "marimo",
				Image:   r.cfg.MarimoImage,
				Command: cmd.Args(),
				Ports: []corev1.ContainerPort{{
					Name:          "marimo",
					ContainerPort: runnerContainerPort,
				}},
				Env:            rn.Spec.Env,
				EnvFrom:        rn.Spec.EnvFrom,
				Resources:      quantity.Requirement(rn.Spec.Cpu.Min, rn.Spec.Cpu.Max, rn.Spec.Memory.Min, rn.Spec.Memory.Max),
				StartupProbe:   &startup,
				LivenessProbe:  &liveness,
				VolumeMounts:   []corev1.VolumeMount{{Name: "home", MountPath: "/home/me"}},
			}},
			Volumes: []corev1.Volume{{
				Name:         "home",
				VolumeSource: corev1.VolumeSource{PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: rn.Spec.Workspace}},
			}},
		},
	}
	if err := controllerSetRef(rn, pod, r.scheme); err != nil {
		return errors.Wrap(err, "runner: set pod owner reference")
	}
	return r.client.Patch(ctx, pod)
}

// reconcileService ensures a Service selecting the runner pod's labels,
// exposing the single "marimo" port.
func (r *Reconciler) reconcileService(ctx context.Context, rn *kubimov1.Runner) error {
	svc := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: rn.Name, Namespace: rn.Namespace},
		Spec: corev1.ServiceSpec{
			Selector: labels.Name(rn.Name),
			Ports: []corev1.ServicePort{{
				Name:       "marimo",
				Port:       runnerContainerPort,
				TargetPort: intstr.FromString("marimo"),
			}},
		},
	}
	if err := controllerSetRef(rn, svc, r.scheme); err != nil {
		return errors.Wrap(err, "runner: set service owner reference")
	}
	return r.client.Patch(ctx, svc)
}

// reconcileIngress ensures the Ingress exposing the Runner, with the
// percent-encoded path rule, optional TLS block and cert-manager
// annotation.
func (r *Reconciler) reconcileIngress(ctx context.Context, rn *kubimov1.Runner) error {
	className := r.cfg.IngressClassName
	if rn.Spec.Ingress != nil && rn.Spec.Ingress.ClassName != "" {
		className = rn.Spec.Ingress.ClassName
	}

	annotations := map[string]string{"kubernetes.io/ingress.class": className}

	pathType := networkingv1.PathTypePrefix
	spec := networkingv1.IngressSpec{
		IngressClassName: &className,
		Rules: []networkingv1.IngressRule{{
			IngressRuleValue: networkingv1.IngressRuleValue{
				HTTP: &networkingv1.HTTPIngressRuleValue{
					Paths: []networkingv1.HTTPIngressPath{{
						Path:     ingressPath(rn),
						PathType: &pathType,
						Backend: networkingv1.IngressBackend{
							Service: &networkingv1.IngressServiceBackend{
								Name: rn.Name,
								Port: networkingv1.ServiceBackendPort{Name: "marimo"},
							},
						},
					}},
				},
			},
		}},
	}

	if rn.Spec.Ingress != nil && rn.Spec.Ingress.TLS != nil {
		tls := rn.Spec.Ingress.TLS
		if len(tls.Hosts) > 0 {
			spec.Rules[0].Host = tls.Hosts[0]
		}
		secretName := tls.SecretName
		if secretName == "" {
			secretName = fmt.Sprintf("%s-tls", rn.Name)
		}
		spec.TLS = []networkingv1.IngressTLS{{Hosts: tls.Hosts, SecretName: secretName}}
		if tls.ClusterIssuer != "" {
			annotations["cert-manager.io/cluster-issuer"] = tls.ClusterIssuer
		}
	}

	ing := &networkingv1.Ingress{
		ObjectMeta: metav1.ObjectMeta{Name: rn.Name, Namespace: rn.Namespace, Annotations: annotations},
		Spec:       spec,
	}
	if err := controllerSetRef(rn, ing, r.scheme); err != nil {
		return errors.Wrap(err, "runner: set ingress owner reference")
	}
	return r.client.Patch(ctx, ing)
}
