//Write catalogs to compiled files
//go:build !i18nops_runtime_only

package i18n

import (
	"compress/gzip"
	"io"

	"github.com/valyala/fastjson"
)

// Save writes the catalog in the flat JSON encoding, gzip compressed if requested
func (c *Catalog) Save(w io.Writer, compress bool) (err error) {
	//Handle compressed files
	if compress {
		gz := gzip.NewWriter(w)
		defer func() {
			if closeErr := gz.Close(); err == nil {
				err = closeErr
			}
		}()
		w = gz
	}

	//Header
	var a fastjson.Arena
	top := a.NewObject()
	top.Set("type", a.NewString(catalogFileType))
	top.Set("version", a.NewNumberInt(catalogVersion))
	top.Set("locale", a.NewString(c.LocaleIdentifier))

	//Blocks
	blocks := a.NewObject()
	for _, b := range c.Blocks {
		blocks.Set(b.Name, b.Block.AppendJSON(&a))
	}
	top.Set("blocks", blocks)
	attributes := a.NewObject()
	for _, b := range c.Attributes {
		attributes.Set(b.Name, b.Block.AppendJSON(&a))
	}
	top.Set("attributes", attributes)

	_, err = w.Write(top.MarshalTo(nil))
	return
}
