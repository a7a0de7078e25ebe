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

package cluster

import (
	"os"

	"github.com/pkg/errors"
)

const inClusterNamespacePath = "/var/run/secrets/kubernetes.io/serviceaccount/namespace"

// ErrNotInCluster is returned if the process is not running within a
// Kubernetes cluster.
var ErrNotInCluster = errors.New("not running within a kubernetes cluster")

// Namespace returns the namespace the current container is running in, read
// from the projected service account namespace file. Returns ErrNotInCluster
// if that file doesn't exist.
func Namespace() (string, error) {
	if _, err := os.Stat(inClusterNamespacePath); os.IsNotExist(err) {
		return "", ErrNotInCluster
	} else if err != nil {
		return "", errors.Wrap(err, "error checking namespace file")
	}

	namespace, err := os.ReadFile(inClusterNamespacePath)
	if err != nil {
		return "", errors.Wrap(err, "error reading namespace file")
	}
	return string(namespace), nil
}
