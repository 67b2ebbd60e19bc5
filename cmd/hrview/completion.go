package main

import (
	"fmt"
	"io"
)

func runCompletion(args []string, out io.Writer) error {
	shell := "bash"
	if len(args) > 0 && args[0] != "" {
		shell = args[0]
	}
	switch shell {
	case "bash":
		_, _ = fmt.Fprint(out, bashCompletion)
	case "zsh":
		_, _ = fmt.Fprint(out, zshCompletion)
	default:
		return fmt.Errorf("unsupported shell: %s (use bash or zsh)", shell)
	}
	return nil
}

const bashCompletion = `
_hrview_completions()
{
    local cur
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "once serve send chart config features completion help --config --url -c --enable --disable" -- "$cur") )
        return 0
    fi

    case "${COMP_WORDS[1]}" in
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            ;;
        send)
            COMPREPLY=( $(compgen -W "state heart-rate --config --url -c" -- "$cur") )
            ;;
        config)
            COMPREPLY=( $(compgen -W "show init --config --force" -- "$cur") )
            ;;
        once)
            COMPREPLY=( $(compgen -W "--config --url --since -c" -- "$cur") )
            ;;
        serve)
            COMPREPLY=( $(compgen -W "--config --listen --max-messages -c" -- "$cur") )
            ;;
        chart)
            COMPREPLY=( $(compgen -W "--config --url --out --title --open -c" -- "$cur") )
            ;;
        --enable|--disable)
            COMPREPLY=( $(compgen -W "dedup animations alt_screen clipboard" -- "$cur") )
            ;;
        *)
            COMPREPLY=( $(compgen -W "--config --url -c" -- "$cur") )
            ;;
    esac
}
complete -F _hrview_completions hrview
`

const zshCompletion = `
#compdef hrview
_hrview() {
    local -a subcmds
    subcmds=('once:print one snapshot' 'serve:run the demo provider' 'send:send a state or heart rate' 'chart:export an HTML chart' 'config:show or init the config file' 'features:list feature flags' 'completion:print shell completions' 'help:show usage')
    if (( CURRENT == 2 )); then
        _describe 'command' subcmds
        return
    fi
    case "$words[2]" in
        completion)
            _values 'shell' bash zsh
            ;;
        send)
            _values 'series' state heart-rate
            ;;
        config)
            _values 'action' show init
            ;;
        *)
            _arguments \
                '--config[Path to config file]' \
                '--url[History provider base URL]' \
                '--since[Only entries newer than this epoch millisecond]' \
                '--listen[Listen address]' \
                '--out[Output HTML path]' \
                '--open[Open the chart in a browser]' \
                '-c[Config key=value override]'
            ;;
    esac
}
_hrview "$@"
`
