package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/intl-tools/translator-service/internal/domain/model"
)

// segmentRE matches one dot-separated segment of a key: starts with a
// letter, ends with a letter or digit, interior may include digits,
// underscores and hyphens.
var segmentRE = regexp.MustCompile(`^[a-z]+([a-z0-9_\-]*[a-z0-9]+)?$`)

// KeyTree is the nested view of the flat key set. Interior nodes map a
// segment to a subtree; leaves carry the full dotted key string. The tree is
// derived from the live keys on demand and never persisted.
type KeyTree struct {
	children map[string]*KeyTree
	key      string
	leaf     bool
}

// NewKeyTree returns an empty tree.
func NewKeyTree() *KeyTree {
	return &KeyTree{children: map[string]*KeyTree{}}
}

// BuildKeyTree materializes the tree from a set of live keys.
func BuildKeyTree(keys []model.Key) *KeyTree {
	t := NewKeyTree()
	for _, k := range keys {
		t.Insert(k.Key)
	}
	return t
}

// Insert adds one dotted key.
func (t *KeyTree) Insert(key string) {
	node := t
	parts := strings.Split(key, ".")
	for i, seg := range parts {
		if i == len(parts)-1 {
			node.children[seg] = &KeyTree{key: key, leaf: true}
			return
		}
		child, ok := node.children[seg]
		if !ok || child.leaf {
			child = NewKeyTree()
			node.children[seg] = child
		}
		node = child
	}
}

// MarshalJSON renders interior nodes as objects with members sorted by
// segment name and leaves as their full key string.
func (t *KeyTree) MarshalJSON() ([]byte, error) {
	if t.leaf {
		return json.Marshal(t.key)
	}
	return json.Marshal(t.children)
}

// ValidateKey runs the two validation stages for a new key against the tree
// of existing keys: syntax of every segment, then the structural walk that
// rejects duplicates and namespace shadowing.
func ValidateKey(key string, tree *KeyTree) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	parts := strings.Split(key, ".")
	for _, seg := range parts {
		if !segmentRE.MatchString(seg) {
			return fmt.Errorf("%w: bad segment %q in %q", ErrInvalidKey, seg, key)
		}
	}

	node := tree
	for i, seg := range parts {
		child, ok := node.children[seg]
		if !ok {
			// The remaining path is free.
			return nil
		}
		last := i == len(parts)-1
		if child.leaf {
			if last {
				return fmt.Errorf("%w: %q already exists", ErrDuplicateKey, key)
			}
			return fmt.Errorf("%w: %q is nested under existing key %q", ErrShadowsLeaf, key, child.key)
		}
		if last {
			return fmt.Errorf("%w: %q is a parent hierarchy", ErrShadowsNamespace, key)
		}
		node = child
	}
	return nil
}
