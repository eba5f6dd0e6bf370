package cli

import (
	"fmt"

	"github.com/diillson/cwlogs-retention-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
   ______        ____                       ____       __             __  _           
  / ____/      _/ / /   ____  ____ ______  / __ \___  / /____  ____  / /_(_)___  ____ 
 / /   | | /| / / / /   / __ \/ __ ` + "`" + `/ ___/ / /_/ / _ \/ __/ _ \/ __ \/ __/ / __ \/ __ \
/ /___ | |/ |/ / / /___/ /_/ / /_/ (__  ) / _, _/  __/ /_/  __/ / / / /_/ / /_/ / / / /
\____/ |__/|__/_/_____/\____/\__, /____/ /_/ |_|\___/\__/\___/_/ /_/\__/_/\____/_/ /_/ 
                            /____/                                                     
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	fmt.Println(blue(fmt.Sprintf("CloudWatch Logs Retention CLI (v%s)", version.FormatVersion())))
}
