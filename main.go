package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"blog-ui/config"
	"blog-ui/database"
	"blog-ui/logger"
	"blog-ui/web"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
	defer logger.CloseLogger()

	if err := database.InitDB(config.GetDBPath()); err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.Warning("close db err:", err)
		}
	}()

	server := web.NewServer()
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("received SIGHUP, restarting web server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

// resetAdminCredential is the out-of-band rotation step for the bootstrap
// admin credential.
func resetAdminCredential(username string) {
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println("reset admin credential failed:", err)
		return
	}
	defer database.CloseDB()

	password, err := database.ResetAdminCredential(username)
	if err != nil {
		fmt.Println("reset admin credential failed:", err)
		return
	}
	fmt.Println("admin credential reset")
	fmt.Println("username:", username)
	fmt.Println("password:", password)
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   config.GetName(),
		Short: "blog platform with admin-moderated registration",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var resetUsername string
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "manage the bootstrap admin credential",
		Run: func(cmd *cobra.Command, args []string) {
			reset, _ := cmd.Flags().GetBool("reset")
			if reset {
				resetAdminCredential(resetUsername)
				return
			}
			_ = cmd.Help()
		},
	}
	adminCmd.Flags().Bool("reset", false, "replace the admin account with a freshly generated credential")
	adminCmd.Flags().StringVar(&resetUsername, "username", "admin", "admin username to (re)create")
	rootCmd.AddCommand(adminCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
