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

// Package cluster is a thin, typed layer over the controller-runtime client
// giving every controller the same get/list/patch/delete vocabulary, with
// server-side apply as the only way to write a spec.
package cluster

import (
	"context"

	"github.com/pkg/errors"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/apiutil"
)

// FieldManager is the server-side apply field manager name every Patch call
// is made under.
const FieldManager = "kubimo-controller"

// DefaultPageSize is the page size used internally by List.
const DefaultPageSize = 500

// Client wraps a controller-runtime client with the typed operations §4.1
// requires: get/get_opt/list/find/patch/patch_json/patch_status/delete.
type Client struct {
	client.Client
	pageSize int64
}

// New builds a Client around the given controller-runtime client.
func New(c client.Client) *Client {
	return &Client{Client: c, pageSize: DefaultPageSize}
}

// Get fetches the object named by key, returning the apimachinery NotFound
// error unmodified so callers can match it with apierrors.IsNotFound.
func (c *Client) Get(ctx context.Context, key client.ObjectKey, obj client.Object) error {
	return c.Client.Get(ctx, key, obj)
}

// GetOptional fetches the object named by key. It returns (false, nil) if
// the object does not exist, rather than an error.
func (c *Client) GetOptional(ctx context.Context, key client.ObjectKey, obj client.Object) (bool, error) {
	if err := c.Client.Get(ctx, key, obj); err != nil {
		if apierrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListAll accumulates every page of a list into a single call, using
// pageSize-sized continuation requests. The cluster holds the full list in
// its informer caches regardless, so the "lazy sequence" of §4.1 collapses
// to an eager, pagination-correct merge rather than a true streaming
// iterator — see DESIGN.md.
func (c *Client) ListAll(ctx context.Context, list client.ObjectList, opts ...client.ListOption) error {
	var items []runtime.Object
	for cont := ""; ; {
		page := list.DeepCopyObject().(client.ObjectList)
		pageOpts := append([]client.ListOption{client.Limit(c.pageSize), client.Continue(cont)}, opts...)
		if err := c.Client.List(ctx, page, pageOpts...); err != nil {
			return err
		}
		pageItems, err := meta.ExtractList(page)
		if err != nil {
			return err
		}
		items = append(items, pageItems...)
		if cont = page.GetContinue(); cont == "" {
			return meta.SetList(list, items)
		}
	}
}

// Find lists at most one item matching opts into list. Callers pass a
// freshly zeroed list and read list.Items themselves; an empty Items slice
// means nothing matched.
func (c *Client) Find(ctx context.Context, list client.ObjectList, opts ...client.ListOption) error {
	opts = append(opts, client.Limit(1))
	return c.Client.List(ctx, list, opts...)
}

// Patch applies obj via server-side apply under FieldManager, clearing the
// system-managed metadata first: only name, generateName, namespace,
// annotations, labels, finalizers and ownerReferences survive. obj's status
// is not cleared; it is sent in the request body as it is.
func (c *Client) Patch(ctx context.Context, obj client.Object) error {
	stripForSpecApply(obj)
	if err := c.setGVK(obj); err != nil {
		return err
	}
	return c.Client.Patch(ctx, obj, client.Apply, client.FieldOwner(FieldManager), client.ForceOwnership)
}

// PatchStatus applies obj to the status subresource via server-side apply
// under FieldManager. obj is sent whole: spec and metadata are not
// stripped from the request body.
func (c *Client) PatchStatus(ctx context.Context, obj client.Object) error {
	if err := c.setGVK(obj); err != nil {
		return err
	}
	return c.Client.Status().Patch(ctx, obj, client.Apply, client.FieldOwner(FieldManager), client.ForceOwnership)
}

// setGVK stamps obj with its apiVersion/kind, which server-side apply
// requires on the request body but which typed clients otherwise omit.
func (c *Client) setGVK(obj client.Object) error {
	gvk, err := apiutil.GVKForObject(obj, c.Client.Scheme())
	if err != nil {
		return errors.Wrap(err, "resolve GroupVersionKind")
	}
	obj.GetObjectKind().SetGroupVersionKind(gvk)
	return nil
}

// PatchJSON applies an RFC-6902 JSON patch by name.
func (c *Client) PatchJSON(ctx context.Context, obj client.Object, ops []byte) error {
	return c.Client.Patch(ctx, obj, client.RawPatch(types.JSONPatchType, ops))
}

// Delete deletes obj and returns the pre-deletion object's existence: ok is
// false if the object was already gone.
func (c *Client) Delete(ctx context.Context, obj client.Object) (bool, error) {
	if err := c.Client.Delete(ctx, obj); err != nil {
		if apierrors.IsNotFound(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "delete")
	}
	return true, nil
}

// stripForSpecApply clears every metadata field except the set §4.1 allows
// to survive a spec-level server-side apply: name, generateName, namespace,
// annotations, labels, finalizers and ownerReferences.
func stripForSpecApply(obj client.Object) {
	obj.SetResourceVersion("")
	obj.SetUID("")
	obj.SetGeneration(0)
	obj.SetCreationTimestamp(metav1.Time{})
	obj.SetDeletionTimestamp(nil)
	obj.SetDeletionGracePeriodSeconds(nil)
	obj.SetManagedFields(nil)
	obj.SetSelfLink("")
}
