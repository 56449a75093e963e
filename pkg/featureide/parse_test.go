package featureide

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/aplet/pkg/errors"
	"github.com/matzehuels/aplet/pkg/fm"
)

const header = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   \n\t"} {
		tree, err := Parse([]byte(in))
		require.Error(t, err)
		assert.Nil(t, tree)
		assert.True(t, errors.Is(err, errors.ErrCodeMalformedModel), "got %v", err)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"not xml", "feature model"},
		{"unclosed", header + `<featureModel><struct>`},
		{"no struct section", header + `<featureModel><properties/></featureModel>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.xml))
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeMalformedModel, errors.GetCode(err))
		})
	}
}

func TestParseEmptyFeatureModel(t *testing.T) {
	xml := header + `
	<featureModel>
		<properties/>
		<struct/>
		<constraints/>
	</featureModel>`

	tree, err := Parse([]byte(xml))

	require.NoError(t, err)
	assert.True(t, tree.Empty())
	assert.Empty(t, tree.OptionalFeatures())
}

func TestParseRootFeature(t *testing.T) {
	xml := header + `
	<featureModel>
		<properties/>
		<struct>
			<and abstract="true" mandatory="true" name="productline">
			</and>
		</struct>
		<constraints/>
	</featureModel>`

	tree, err := Parse([]byte(xml))

	require.NoError(t, err)
	require.NotNil(t, tree.Root)
	assert.Equal(t, "productline", tree.Root.Name)
	assert.True(t, tree.Root.Abstract)
	assert.True(t, tree.Root.Mandatory)
	assert.Equal(t, fm.KindAnd, tree.Root.Kind)
	assert.True(t, tree.Root.IsRoot())
}

func TestParseChildren(t *testing.T) {
	xml := header + `
	<featureModel>
		<struct>
			<and abstract="true" mandatory="true" name="productline">
				<and abstract="true" mandatory="true" name="mandatory_child">
					<feature mandatory="true" name="mandatory_grandchild"/>
				</and>
				<feature name="optional_child"/>
			</and>
		</struct>
	</featureModel>`

	tree, err := Parse([]byte(xml))
	require.NoError(t, err)

	children := tree.Root.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "mandatory_child", children[0].Name)
	assert.Equal(t, "optional_child", children[1].Name)
	assert.Same(t, tree.Root, children[0].Parent())

	grand := children[0].Children()
	require.Len(t, grand, 1)
	assert.Equal(t, "mandatory_grandchild", grand[0].Name)
	assert.True(t, grand[0].Mandatory)
	assert.False(t, grand[0].Abstract)
}

func TestParseAttributeRules(t *testing.T) {
	xml := header + `
	<featureModel>
		<struct>
			<and name="root">
				<feature name="absent"/>
				<feature abstract="false" mandatory="false" name="false"/>
				<feature abstract="TRUE" mandatory="yes" name="not-exact"/>
				<feature abstract="true" mandatory="true" name="both"/>
			</and>
		</struct>
	</featureModel>`

	tree, err := Parse([]byte(xml))
	require.NoError(t, err)

	tests := []struct {
		name      string
		abstract  bool
		mandatory bool
	}{
		{"absent", false, false},
		{"false", false, false},
		{"not-exact", false, false},
		{"both", true, true},
	}
	for _, tt := range tests {
		f := tree.Find(tt.name)
		require.NotNil(t, f, tt.name)
		assert.Equal(t, tt.abstract, f.Abstract, tt.name)
		assert.Equal(t, tt.mandatory, f.Mandatory, tt.name)
	}
}

func TestParseSkipsUnnamedElements(t *testing.T) {
	xml := header + `
	<featureModel>
		<struct>
			<and abstract="true" name="root">
				<description>root docs</description>
				<feature name="a"><graphics key="x" value="y"/></feature>
			</and>
		</struct>
	</featureModel>`

	tree, err := Parse([]byte(xml))
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "a"}, fm.Names(tree.Features()))
}

func TestParseFile(t *testing.T) {
	tree, err := ParseFile(filepath.Join("testdata", "model.xml"))
	require.NoError(t, err)

	assert.Equal(t, "todoapp", tree.RootName())
	assert.Equal(t,
		[]string{"todoapp", "AddTodo", "ListTodos", "Organisation", "Priorities", "Tags", "Storage", "LocalStorage", "RemoteStorage"},
		fm.Names(tree.Features()))
	assert.Equal(t,
		[]string{"Priorities", "Tags", "Storage", "LocalStorage", "RemoteStorage"},
		fm.Names(tree.OptionalFeatures()))
	assert.Equal(t, fm.KindAlt, tree.Find("Storage").Kind)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "model.xml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}
