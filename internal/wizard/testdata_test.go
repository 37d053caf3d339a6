package wizard

import "edureg/pkg/types"

func validBasicInfo() types.BasicInfo {
	return types.BasicInfo{
		InstitutionName:    "Sunrise Public School",
		InstitutionType:    types.InstitutionTypeSchool,
		EstablishmentYear:  "1998",
		RegistrationNumber: "REG-2211-45",
		PAN:                "ABCDE1234F",
		Email:              "owner@inst.example",
		Password:           "Sup3rSecret!",
		ContactNumber:      "9876543210",
		Address:            "42 Lake View Road, Sector 9",
		City:               "Pune",
		State:              "Maharashtra",
		Pincode:            "411001",
		OwnerName:          "Asha Kulkarni",
		OwnerContact:       "9123456780",
	}
}

func attachment(name string) types.Attachment {
	return types.Attachment{Name: name, Size: 3, MimeType: "application/pdf", Content: []byte("pdf")}
}
