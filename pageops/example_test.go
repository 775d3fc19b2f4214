package pageops_test

import (
	"bytes"
	"fmt"

	"github.com/lvillar/hospreport"
	"github.com/lvillar/hospreport/pageops"
)

// ExampleMerge combines two generated reports into one batch document.
func ExampleMerge() {
	var reports [][]byte
	for _, title := range []string{"Equipamento 001234", "Equipamento 001235"} {
		var buf bytes.Buffer
		if _, err := hospreport.Generate(&buf, hospreport.Document{Title: title}); err != nil {
			fmt.Println(err)
			return
		}
		reports = append(reports, buf.Bytes())
	}

	var merged bytes.Buffer
	if err := pageops.Merge(&merged, reports...); err != nil {
		fmt.Println(err)
		return
	}
	n, err := pageops.PageCount(merged.Bytes())
	fmt.Println(n, err)
	// Output: 2 <nil>
}
