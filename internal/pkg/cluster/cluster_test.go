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
	"testing"

	"github.com/stretchr/testify/assert"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestStripForSpecApplyPreservesIdentityFields(t *testing.T) {
	now := metav1.Now()
	grace := int64(30)
	obj := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:                       "cfg",
			GenerateName:               "cfg-",
			Namespace:                  "default",
			ResourceVersion:            "123",
			UID:                        "abc-def",
			Generation:                 4,
			CreationTimestamp:          now,
			DeletionTimestamp:          &now,
			DeletionGracePeriodSeconds: &grace,
			SelfLink:                   "/api/v1/namespaces/default/configmaps/cfg",
			Labels:                     map[string]string{"a": "b"},
			Annotations:                map[string]string{"c": "d"},
			Finalizers:                 []string{"kubimo.aqora.io/controller"},
			OwnerReferences: []metav1.OwnerReference{
				{Name: "owner", Controller: boolPtr(true)},
			},
		},
	}

	stripForSpecApply(obj)

	assert.Equal(t, "cfg", obj.Name)
	assert.Equal(t, "cfg-", obj.GenerateName)
	assert.Equal(t, "default", obj.Namespace)
	assert.Equal(t, map[string]string{"a": "b"}, obj.Labels)
	assert.Equal(t, map[string]string{"c": "d"}, obj.Annotations)
	assert.Equal(t, []string{"kubimo.aqora.io/controller"}, obj.Finalizers)
	assert.Len(t, obj.OwnerReferences, 1)

	assert.Empty(t, obj.ResourceVersion)
	assert.Empty(t, obj.UID)
	assert.Zero(t, obj.Generation)
	assert.True(t, obj.CreationTimestamp.IsZero())
	assert.Nil(t, obj.DeletionTimestamp)
	assert.Nil(t, obj.DeletionGracePeriodSeconds)
	assert.Empty(t, obj.SelfLink)
	assert.Nil(t, obj.ManagedFields)
}

func boolPtr(b bool) *bool { return &b }
