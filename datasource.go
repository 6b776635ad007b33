package sina

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// SubType classifies a data source.
type SubType string

const (
	SubTypeNone SubType = ""
	// SubTypeFiltered is a data source derived from another one by a fixed
	// filter. It always runs in search mode.
	SubTypeFiltered SubType = "Filtered"
)

// HierarchyDisplayType tells how a hierarchy is presented.
type HierarchyDisplayType string

const (
	HierarchyDisplayTypeNone                 HierarchyDisplayType = ""
	HierarchyDisplayTypeStaticHierarchyFacet HierarchyDisplayType = "StaticHierarchyFacet"
	HierarchyDisplayTypeHierarchyResultView  HierarchyDisplayType = "HierarchyResultView"
)

// AttributeMetadata describes one attribute of a data source.
type AttributeMetadata struct {
	ID                   string               `json:"id"`
	Label                string               `json:"label,omitempty"`
	IsHierarchy          bool                 `json:"isHierarchy,omitempty"`
	HierarchyDisplayType HierarchyDisplayType `json:"hierarchyDisplayType,omitempty"`
}

// DataSource is the search scope a Filter is bound to. It is read only for
// the Filter.
type DataSource interface {
	ID() string
	SubType() SubType
	AttributesMetadata() []*AttributeMetadata
	IsHierarchyDataSource() bool
	HierarchyDisplayType() HierarchyDisplayType
	HierarchyAttribute() string
	ToJSON() ([]byte, error)
}

// StaticDataSource is a DataSource with fixed metadata.
type StaticDataSource struct {
	DataSourceID         string               `json:"id"`
	Label                string               `json:"label,omitempty"`
	Type                 SubType              `json:"subType,omitempty"`
	Attributes           []*AttributeMetadata `json:"-"`
	Hierarchy            bool                 `json:"-"`
	DisplayType          HierarchyDisplayType `json:"-"`
	HierarchyAttributeID string               `json:"-"`
}

var _ DataSource = (*StaticDataSource)(nil)

var jsonConfig = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

func (ds *StaticDataSource) ID() string                               { return ds.DataSourceID }
func (ds *StaticDataSource) SubType() SubType                         { return ds.Type }
func (ds *StaticDataSource) AttributesMetadata() []*AttributeMetadata { return ds.Attributes }
func (ds *StaticDataSource) IsHierarchyDataSource() bool              { return ds.Hierarchy }

func (ds *StaticDataSource) HierarchyDisplayType() HierarchyDisplayType { return ds.DisplayType }
func (ds *StaticDataSource) HierarchyAttribute() string                 { return ds.HierarchyAttributeID }

func (ds *StaticDataSource) ToJSON() ([]byte, error) {
	data, err := jsonConfig.Marshal(ds)
	if err != nil {
		return nil, errors.Wrap(err, "marshal data source")
	}
	return data, nil
}

// AttributeMetadataByID returns the metadata of attribute id, or nil.
func AttributeMetadataByID(ds DataSource, id string) *AttributeMetadata {
	if ds == nil {
		return nil
	}
	attribute, _ := lo.Find(ds.AttributesMetadata(), func(item *AttributeMetadata) bool {
		return item != nil && item.ID == id
	})
	return attribute
}

func sameDataSource(a, b DataSource) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}
