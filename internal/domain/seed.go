package domain

// DefaultCatalog is shown until the first remote snapshot arrives and can be
// pushed to an empty store with the migrate helper.
func DefaultCatalog() []Category {
	return []Category{
		{
			ID:              "nuts",
			Name:            "Industrial Nuts",
			NameUrdu:        "صنعتی نٹ",
			Image:           "/media/categories/nuts.jpg",
			Description:     "High-precision industrial nuts manufactured for extreme durability and heavy-duty industrial applications.",
			DescriptionUrdu: "اعلیٰ درستگی والے صنعتی نٹ جو انتہائی پائیداری اور بھاری صنعتی استعمال کے لیے بنائے گئے ہیں۔",
			Series: []ProductSeries{
				{
					ID:              "hex-nuts",
					Name:            "Hexagonal Nuts",
					NameUrdu:        "ہیکساگونل نٹ",
					Image:           "/media/series/hex-nuts.jpg",
					Description:     "Standard hexagonal nuts providing strong grip and reliable fastening for all mechanical structures.",
					DescriptionUrdu: "تمام مکینیکل ڈھانچوں کے لیے مضبوط گرفت اور قابل اعتماد مضبوطی فراہم کرنے والے معیاری ہیکساگونل نٹ۔",
					Sizes:           []string{"M4", "M5", "M6", "M8", "M10", "M12", "M16", "M20", "M24", "M30"},
					Specifications:  []string{"Grade 8.8 Steel", "Zinc Plated", "Metric Thread"},
				},
			},
		},
		{
			ID:              "bolts",
			Name:            "Precision Bolts",
			NameUrdu:        "درست بولٹ",
			Image:           "/media/categories/bolts.jpg",
			Description:     "High-tensile bolts engineered for structural integrity and mechanical engineering excellence.",
			DescriptionUrdu: "سٹرکچرل سالمیت اور مکینیکل انجینئرنگ کی عمدگی کے لیے تیار کردہ ہائی ٹینسائل بولٹ۔",
			Series: []ProductSeries{
				{
					ID:              "hex-head-bolts",
					Name:            "Hex Head Bolts",
					NameUrdu:        "ہیکس ہیڈ بولٹ",
					Image:           "/media/series/hex-head-bolts.jpg",
					Description:     "Heavy-duty structural bolts with precision hexagonal heads for secure industrial installation.",
					DescriptionUrdu: "محفوظ صنعتی تنصیب کے لیے درست ہیکساگونل ہیڈز کے ساتھ ہیوی ڈیوٹی سٹرکچرل بولٹ۔",
					Sizes:           []string{"M8x20", "M10x50", "M12x60", "M16x80"},
					Specifications:  []string{"High Tensile 10.9", "Black Oxide Finish"},
				},
			},
		},
	}
}

// DefaultContact seeds the business contact record on first run.
func DefaultContact() ContactInfo {
	return ContactInfo{
		Phone:    "+923239645001",
		WhatsApp: "+923239645001",
		Email:    "",
		Address:  "Lahore, Pakistan",
	}
}
