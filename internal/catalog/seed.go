package catalog

// Seed returns the built-in reference data the catalog starts with.
func Seed() []Entry {
	return []Entry{
		{Make: "Toyota", Model: "Camry", YearStart: 2018, FrontSuspension: "mcpherson", RearSuspension: "independent"},
		{Make: "Toyota", Model: "Corolla", YearStart: 2019, FrontSuspension: "mcpherson", RearSuspension: "torsion-beam"},
		{Make: "Toyota", Model: "RAV4", YearStart: 2019, FrontSuspension: "mcpherson", RearSuspension: "independent"},
		{Make: "Toyota", Model: "Land Cruiser", YearStart: 2016, FrontSuspension: "independent", RearSuspension: "dependent"},
		{Make: "Toyota", Model: "Prius", YearStart: 2016, FrontSuspension: "mcpherson", RearSuspension: "torsion-beam"},

		{Make: "BMW", Model: "3 Series", YearStart: 2019, FrontSuspension: "double-wishbone", RearSuspension: "multi-link"},
		{Make: "BMW", Model: "5 Series", YearStart: 2017, FrontSuspension: "double-wishbone", RearSuspension: "multi-link"},
		{Make: "BMW", Model: "X3", YearStart: 2018, FrontSuspension: "double-wishbone", RearSuspension: "multi-link"},
		{Make: "BMW", Model: "X5", YearStart: 2019, FrontSuspension: "double-wishbone", RearSuspension: "multi-link"},

		{Make: "Mercedes-Benz", Model: "C-Class", YearStart: 2021, FrontSuspension: "multi-link", RearSuspension: "multi-link"},
		{Make: "Mercedes-Benz", Model: "E-Class", YearStart: 2020, FrontSuspension: "multi-link", RearSuspension: "multi-link"},
		{Make: "Mercedes-Benz", Model: "GLC", YearStart: 2019, FrontSuspension: "multi-link", RearSuspension: "multi-link"},

		{Make: "Volkswagen", Model: "Golf", YearStart: 2020, FrontSuspension: "mcpherson", RearSuspension: "multi-link"},
		{Make: "Volkswagen", Model: "Passat", YearStart: 2019, FrontSuspension: "mcpherson", RearSuspension: "multi-link"},
		{Make: "Volkswagen", Model: "Tiguan", YearStart: 2018, FrontSuspension: "mcpherson", RearSuspension: "multi-link"},

		{Make: "Audi", Model: "A4", YearStart: 2020, FrontSuspension: "multi-link", RearSuspension: "multi-link"},
		{Make: "Audi", Model: "A6", YearStart: 2019, FrontSuspension: "multi-link", RearSuspension: "multi-link"},
		{Make: "Audi", Model: "Q5", YearStart: 2018, FrontSuspension: "multi-link", RearSuspension: "multi-link"},

		{Make: "Hyundai", Model: "Elantra", YearStart: 2021, FrontSuspension: "mcpherson", RearSuspension: "torsion-beam"},
		{Make: "Hyundai", Model: "Sonata", YearStart: 2020, FrontSuspension: "mcpherson", RearSuspension: "multi-link"},
		{Make: "Hyundai", Model: "Tucson", YearStart: 2021, FrontSuspension: "mcpherson", RearSuspension: "multi-link"},

		{Make: "Kia", Model: "Rio", YearStart: 2020, FrontSuspension: "mcpherson", RearSuspension: "torsion-beam"},
		{Make: "Kia", Model: "Optima", YearStart: 2019, FrontSuspension: "mcpherson", RearSuspension: "multi-link"},
		{Make: "Kia", Model: "Sportage", YearStart: 2022, FrontSuspension: "mcpherson", RearSuspension: "multi-link"},

		{Make: "Ford", Model: "Focus", YearStart: 2018, FrontSuspension: "mcpherson", RearSuspension: "torsion-beam"},
		{Make: "Ford", Model: "Mondeo", YearStart: 2019, FrontSuspension: "mcpherson", RearSuspension: "multi-link"},
		{Make: "Ford", Model: "Kuga", YearStart: 2020, FrontSuspension: "mcpherson", RearSuspension: "multi-link"},

		{Make: "Nissan", Model: "Sentra", YearStart: 2020, FrontSuspension: "mcpherson", RearSuspension: "torsion-beam"},
		{Make: "Nissan", Model: "Altima", YearStart: 2019, FrontSuspension: "mcpherson", RearSuspension: "multi-link"},
		{Make: "Nissan", Model: "X-Trail", YearStart: 2021, FrontSuspension: "mcpherson", RearSuspension: "multi-link"},

		{Make: "Honda", Model: "Civic", YearStart: 2022, FrontSuspension: "mcpherson", RearSuspension: "multi-link"},
		{Make: "Honda", Model: "Accord", YearStart: 2018, FrontSuspension: "mcpherson", RearSuspension: "multi-link"},
		{Make: "Honda", Model: "CR-V", YearStart: 2020, FrontSuspension: "mcpherson", RearSuspension: "multi-link"},
	}
}
