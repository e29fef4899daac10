package service_test

import (
	"context"
	"fmt"
	"log"

	"github.com/jeremyhahn/go-otpimport/pkg/service"
)

func ExampleImporter_Import() {
	importer, err := service.NewImporter(service.Config{})
	if err != nil {
		log.Fatal(err)
	}

	existing := []service.Service{
		{Name: "GitHub:octocat", Secret: "JBSWY3DPEHPK3PXP", Position: 0, OTP: service.OTP{Issuer: "GitHub"}},
	}
	data := []byte(`{
  "services": [
    {"name": "GitHub", "secret": "JBSWY3DPEHPK3PXP", "otp": {"account": "GitHub:octocat", "issuer": "GitHub"}},
    {"name": "Mail", "secret": "GEZDGNBVGY3TQOJQ", "otp": {"tokenType": "TOTP", "period": 60}}
  ],
  "schemaVersion": 4
}`)

	res, err := importer.Import(context.Background(), service.Request{Data: data, Existing: existing})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Provider, len(res.Services), res.Skipped)
	for _, s := range res.Services {
		fmt.Println(s.Position, s.Name, s.OTP.Link)
	}
	// Output:
	// 2fas 1 1
	// 1 Mail otpauth://totp/Mail?secret=GEZDGNBVGY3TQOJQ&issuer=Mail&algorithm=SHA-1&digits=6&period=60
}
