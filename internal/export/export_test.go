package export

import "github.com/gorewood/ismism/internal/catalog"

func testIsm() *catalog.Ism {
	return &catalog.Ism{
		Code:        "1-2-3-4",
		Name:        "科学实在论",
		Aliases:     []string{"实在论"},
		Description: "世界独立于心灵而存在。",
		FourGrid: catalog.FourGrid{
			Ontology: &catalog.GridItem{Value: "1", Text: "场域是一元的"},
			Purpose:  &catalog.GridItem{Value: "4", Text: "目的在于超越"},
		},
		KeyPoints:  []string{"第一点", "第二点"},
		QA:         []catalog.QA{{Question: "为什么?", Answer: "因为。"}},
		Extensions: []catalog.Extension{{Title: "延伸阅读", Description: "参见某书"}, {Title: "无描述"}},
	}
}

func minimalIsm() *catalog.Ism {
	return &catalog.Ism{Code: "$-1-1", Name: "残缺"}
}

func subjectlessIsm() *catalog.Ism {
	return &catalog.Ism{Code: "$-2-1-1", Name: "无主体论", Description: "无主体。"}
}
