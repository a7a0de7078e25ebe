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

package indexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleNotebook = `
import marimo

app = marimo.App()

@app.function
def add(a, b):
    return a + b

@app.function
def greet(name):
    return f"hi {name}"
`

func TestIsMarimoNotebookDetectsAppBinding(t *testing.T) {
	assert.True(t, isMarimoNotebook([]byte(sampleNotebook)))
	assert.False(t, isMarimoNotebook([]byte("print('hello')\n")))
}

func TestParseMarimoFunctionsExtractsSignatures(t *testing.T) {
	sigs := parseMarimoFunctions([]byte(sampleNotebook))
	assert.Len(t, sigs, 2)
	assert.Equal(t, "add", sigs[0].Name)
	assert.Equal(t, []string{"a", "b"}, sigs[0].Parameters)
	assert.Equal(t, "greet", sigs[1].Name)
	assert.Equal(t, []string{"name"}, sigs[1].Parameters)
}
