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

package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/api/resource"
)

func qty(s string) *resource.Quantity {
	q := resource.MustParse(s)
	return &q
}

func TestCoherentTrivialWhenUnset(t *testing.T) {
	assert.True(t, Coherent(nil, nil))
	assert.True(t, Coherent(qty("1Gi"), nil))
	assert.True(t, Coherent(nil, qty("1Gi")))
}

func TestCoherentMaxAtLeastMin(t *testing.T) {
	assert.True(t, Coherent(qty("1Gi"), qty("2Gi")))
	assert.True(t, Coherent(qty("1Gi"), qty("1Gi")))
	assert.False(t, Coherent(qty("2Gi"), qty("1Gi")))
}

func TestRequirementEmptyWhenUnset(t *testing.T) {
	out := Requirement(nil, nil, nil, nil)
	assert.Nil(t, out.Requests)
	assert.Nil(t, out.Limits)
}

func TestRequirementPartial(t *testing.T) {
	out := Requirement(qty("500m"), nil, nil, nil)
	assert.NotNil(t, out.Requests)
	assert.Nil(t, out.Limits)
	_, ok := out.Requests["cpu"]
	assert.True(t, ok)
}

func TestPVCResourceListNilWhenUnset(t *testing.T) {
	assert.Nil(t, PVCResourceList(nil))
}

func TestPVCResourceListSet(t *testing.T) {
	list := PVCResourceList(qty("5Gi"))
	q, ok := list["storage"]
	assert.True(t, ok)
	assert.Equal(t, "5Gi", q.String())
}
