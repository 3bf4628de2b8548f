//Compiled catalog files and loading them from an io.Reader

package i18n

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/valyala/fastjson"
)

//goland:noinspection GoSnakeCaseUsage
const (
	CatalogExtension           = ".i18n.json"
	CatalogExtensionCompressed = ".i18n.json.gz"

	catalogFileType = "I18N"
	catalogVersion  = 1
)

// NamedBlock is a compiled message and the name it was declared under in its message file
type NamedBlock struct {
	Name    string
	Message string //The message as given in the message file (after Postprocess). Not part of the compiled file.
	Block   *Block
}

// NamedAttributeBlock is a compiled attribute set and the name it was declared under in its message file
type NamedAttributeBlock struct {
	Name  string
	Block *AttributeBlock
}

// Catalog holds every compiled block of one locale, in declaration order
type Catalog struct {
	LocaleIdentifier string
	Blocks           []NamedBlock
	Attributes       []NamedAttributeBlock
}

// Block returns the message block with the given name, or nil
func (c *Catalog) Block(name string) *Block {
	for _, b := range c.Blocks {
		if b.Name == name {
			return b.Block
		}
	}
	return nil
}

// AttributeBlock returns the attribute block with the given name, or nil
func (c *Catalog) AttributeBlock(name string) *AttributeBlock {
	for _, b := range c.Attributes {
		if b.Name == name {
			return b.Block
		}
	}
	return nil
}

// Names returns the names of every block and attribute block
func (c *Catalog) Names() []string {
	ret := make([]string, 0, len(c.Blocks)+len(c.Attributes))
	for _, b := range c.Blocks {
		ret = append(ret, b.Name)
	}
	for _, b := range c.Attributes {
		ret = append(ret, b.Name)
	}
	return ret
}

// LoadCatalog reads a catalog written by Catalog.Save
func LoadCatalog(r io.Reader, isCompressed bool) (*Catalog, error) {
	//Handle compressed files
	if isCompressed {
		if _r, err := gzip.NewReader(r); err != nil {
			return nil, err
		} else {
			defer func() { _ = _r.Close() }()
			r = _r
		}
	}

	//Parse the file
	var v *fastjson.Value
	if b, err := io.ReadAll(r); err != nil {
		return nil, errors.New("Error reading the file: " + err.Error())
	} else if _v, err := (&fastjson.Parser{}).ParseBytes(b); err != nil {
		return nil, errors.New("Error parsing the file: " + err.Error())
	} else {
		v = _v
	}

	//Check the header
	if fileType := string(v.GetStringBytes("type")); fileType != catalogFileType {
		return nil, fmt.Errorf("File type “%s” is not a compiled catalog", fileType)
	} else if version := v.GetInt("version"); version != catalogVersion {
		return nil, fmt.Errorf("Compiled catalog version %d is not supported (expected %d)", version, catalogVersion)
	}
	ret := &Catalog{LocaleIdentifier: string(v.GetStringBytes("locale"))}

	//Read the blocks in order. Visit cannot return errors so the first one is kept.
	var visitErr error
	if blocks := v.GetObject("blocks"); blocks != nil {
		blocks.Visit(func(key []byte, bv *fastjson.Value) {
			if visitErr != nil {
				return
			}
			if b, err := BlockFromJSON(bv); err != nil {
				visitErr = fmt.Errorf("Block “%s”: %w", key, err)
			} else {
				ret.Blocks = append(ret.Blocks, NamedBlock{Name: string(key), Block: b})
			}
		})
	}
	if attributes := v.GetObject("attributes"); attributes != nil {
		attributes.Visit(func(key []byte, av *fastjson.Value) {
			if visitErr != nil {
				return
			}
			if b, err := AttributeBlockFromJSON(av); err != nil {
				visitErr = fmt.Errorf("Attributes “%s”: %w", key, err)
			} else {
				ret.Attributes = append(ret.Attributes, NamedAttributeBlock{string(key), b})
			}
		})
	}
	if visitErr != nil {
		return nil, visitErr
	}

	return ret, nil
}
