package semantics_test

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ardnew/espr/lang"
	"github.com/ardnew/espr/semantics"
)

func ExampleLegalize() {
	tree, err := lang.Parse(`
SCHEMA family;
  ENTITY person;
    parent : OPTIONAL person;
  END_ENTITY;
END_SCHEMA;`)
	if err != nil {
		fmt.Println(err)

		return
	}

	ir, err := semantics.Legalize(tree)
	if err != nil {
		fmt.Println(err)

		return
	}

	person, _ := ir.Schemas[0].Entity("person")
	fmt.Println(person.Attributes[0].Type.Ref.Path)
	// Output:
	// family.person
}

func ExampleTypeNotFoundError() {
	tree, _ := lang.Parse(`
SCHEMA family;
  ENTITY person;
    parent : persn;
  END_ENTITY;
END_SCHEMA;`)

	_, err := semantics.Legalize(tree)

	var tnf *semantics.TypeNotFoundError
	if errors.As(err, &tnf) {
		fmt.Println(tnf)
	}
	// Output:
	// type "persn" not found in scope family.person (did you mean person?)
}

func ExampleIR_FormatJSON() {
	tree, _ := lang.Parse(`
SCHEMA s;
  TYPE label = STRING; END_TYPE;
END_SCHEMA;`)

	ir, _ := semantics.Legalize(tree)
	_ = ir.FormatJSON(context.Background(), os.Stdout, 2)
	// Output:
	// {
	//   "schemas": [
	//     {
	//       "name": "s",
	//       "path": "s",
	//       "types": [
	//         {
	//           "name": "label",
	//           "path": "s.label",
	//           "underlying": {
	//             "kind": "simple",
	//             "simple": "STRING"
	//           }
	//         }
	//       ]
	//     }
	//   ]
	// }
}
