// Package main implements very simple grpc client that can be used for testing ghcontributors grpc server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	jsoniter "github.com/json-iterator/go"
	appGrpc "github.com/m-zajac/ghcontributors/internal/api/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var (
	serverAddr   = flag.String("s", "localhost:9090", "The server address in the format of host:port")
	organization = flag.String("org", "octocat", "Github organization or user")
	repository   = flag.String("repo", "hello-world", "Github repository")
	limit        = flag.Int("limit", 10, "Maximum number of contributors, 0 for all")
	asJSON       = flag.Bool("json", false, "Print response as json")
	timeout      = flag.Duration("timeout", 30*time.Second, "Request timeout")
)

func main() {
	flag.Parse()

	conn, err := grpc.NewClient(*serverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()
	client := appGrpc.NewServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	req := appGrpc.Request{
		Organization: *organization,
		Repository:   *repository,
		Limit:        int32(*limit),
	}
	resp, err := client.List(ctx, &req)
	if err != nil {
		log.Fatalf("server response error: %v", err)
	}

	if *asJSON {
		b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(resp, "", "  ")
		if err != nil {
			log.Fatalf("encoding response to json error: %v", err)
		}
		fmt.Println(string(b))
		return
	}

	fmt.Print(" Contributions | Login\n")
	fmt.Print("----------------------------\n")
	for _, c := range resp.Contributors {
		fmt.Printf("%14d | %s\n", c.Contributions, c.Login)
	}
}
