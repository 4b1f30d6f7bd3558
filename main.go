// @title                       Invoice Tracker API
// @version                     1.0
// @description                 Accounts receivable and payable tracking.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import "github.com/cuentas/invoice-tracker/cmd"

func main() {
	cmd.Execute()
}
