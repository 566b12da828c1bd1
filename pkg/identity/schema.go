/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	_ "embed"
	"errors"
	"strings"

	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/doc/validator/jsonschema"
)

// AttributesSchemaID is the $id of the schema the known profile and contact attributes are checked against.
const AttributesSchemaID = "https://anonid.trustbloc.dev/schema/identity-attributes.schema.json"

var (
	//go:embed schema/attributes.schema.json
	attributesSchema []byte

	schemaValidator = jsonschema.NewCachingValidator() //nolint:gochecknoglobals
)

// ValidateAttributes checks the known attributes for their expected types. Attributes the schema does not
// know about are accepted as they are.
func ValidateAttributes(attributes map[string]interface{}) error {
	if attributes == nil {
		attributes = map[string]interface{}{}
	}

	err := schemaValidator.Validate(attributes, AttributesSchemaID, attributesSchema)
	if err == nil {
		return nil
	}

	e := coreerr.NewInvalidValue(err).WithComponent(coreerr.SchemaValidatorComponent).
		WithOperation("validate-attributes")

	var verrs jsonschema.ValidationErrors
	if errors.As(err, &verrs) {
		e = e.WithIncorrectValue(strings.Join(verrs.Fields(), ","))
	}

	return e
}
