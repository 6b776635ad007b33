package sina

import (
	"github.com/samber/lo"

	"github.com/theplant/sina/condition"
)

// TextKeyFolderAttribute is the message key of the error returned when the
// data source has no folder attribute.
const TextKeyFolderAttribute = "error.sina.getFolderAttribute"

// IsFolderMode reports whether f browses a hierarchy as folders rather than
// running a search. All of the following must hold:
//   - folder mode is enabled in the config,
//   - the data source has a hierarchy shown as a static facet or as a result view,
//   - the data source is not a filtered one,
//   - an initial folder search is requested or the root already holds a
//     condition on the folder attribute,
//   - the search term is empty or "*" and no other attribute is filtered.
func (f *Filter) IsFolderMode() bool {
	if !f.config.FolderMode {
		return false
	}
	if f.searchTerm != "" && f.searchTerm != "*" {
		return false
	}
	if f.dataSource == nil || f.dataSource.SubType() == SubTypeFiltered {
		return false
	}
	folderAttribute, ok := f.folderAttribute()
	if !ok {
		return false
	}
	if !f.config.InitialFolderSearch && !f.root.ContainsAttribute(folderAttribute) {
		return false
	}
	others := lo.Without(condition.Attributes(f.root), folderAttribute)
	return len(others) == 0
}

// FolderAttribute returns the attribute holding the folder hierarchy of the
// data source.
func (f *Filter) FolderAttribute() (string, error) {
	attribute, ok := f.folderAttribute()
	if !ok {
		return "", f.internalError(TextKeyFolderAttribute, dataSourceID(f.dataSource))
	}
	return attribute, nil
}

func (f *Filter) folderAttribute() (string, bool) {
	if f.dataSource == nil {
		return "", false
	}
	staticFacet, ok := lo.Find(f.dataSource.AttributesMetadata(), func(item *AttributeMetadata) bool {
		return item != nil && item.IsHierarchy &&
			item.HierarchyDisplayType == HierarchyDisplayTypeStaticHierarchyFacet
	})
	if ok {
		return staticFacet.ID, true
	}
	if f.dataSource.IsHierarchyDataSource() &&
		f.dataSource.HierarchyDisplayType() == HierarchyDisplayTypeHierarchyResultView &&
		f.dataSource.HierarchyAttribute() != "" {
		return f.dataSource.HierarchyAttribute(), true
	}
	return "", false
}
