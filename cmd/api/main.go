package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/Flarenzy/site-ipam/docs"
	"github.com/Flarenzy/site-ipam/internal/app"
)

//	@title			Site IPAM API
//	@version		1.0
//	@description	Multi-site network inventory: devices, VLANs, free addresses and VLAN address plans.

//	@contact.name	Network Operations
//	@contact.email	netops@example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:4040
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := app.Run(ctx, cfg); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
