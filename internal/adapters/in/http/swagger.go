package http

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// registerSwaggerDoc publishes the document to the swagger UI. swag panics on
// a second registration under the same name, and tests build several routers.
func registerSwaggerDoc(doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc{json: string(data)})
	})
	return nil
}
