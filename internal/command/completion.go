// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Snogren/testpadapi/internal/meta"
)

const bashCompletionScript = `# bash completion for testpad
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_testpad()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "run history diff show results ls completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local store="--data-dir -d --store --bucket --prefix --region --profile --endpoint --key-lists -k"
    local listing="--color -c --output -o --padding --titles -t"

    case "$cmd" in
        run)
            local opts="$store --url -u --product --channel --release --timeout --offline --output -o"
            ;;
        history|ls)
            local opts="$store $listing"
            ;;
        diff)
            local opts="$store $listing --delta"
            ;;
        show)
            local opts="$store --output -o --query -q"
            ;;
        results)
            local opts="$store $listing --filter -f --sort -s --wide -w"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts=""
            ;;
    esac

    case "$prev" in
        --data-dir|-d)
            COMPREPLY=( $(compgen -d -- "$cur") )
            return 0
            ;;
        --store)
            COMPREPLY=( $(compgen -W "local s3" -- "$cur") )
            return 0
            ;;
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml raw" -- "$cur") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
}

complete -F _testpad testpad
`

const zshCompletionScript = `#compdef testpad

_testpad() {
  local -a commands
  commands=(
    'run:capture the report and record what changed'
    'history:list the changes between consecutive snapshots'
    'diff:compare two stored snapshots'
    'show:print a stored snapshot'
    'results:list the sub-test results of a stored snapshot'
    'ls:list stored snapshots'
    'completion:generate shell completion script'
  )

  local -a store listing
  store=(
    '(-d --data-dir)'{-d,--data-dir}'[snapshot directory]:directory:_directories'
    '--store[store type]:store:(local s3)'
    '--bucket[S3 bucket]:bucket'
    '--prefix[S3 key prefix]:prefix'
    '--region[AWS region]:region'
    '--profile[AWS profile]:profile'
    '--endpoint[S3 endpoint URL]:endpoint'
    '(-k --key-lists)'{-k,--key-lists}'[compare lists of tests by id]'
  )
  listing=(
    '(-c --color)'{-c,--color}'[colored output]'
    '(-o --output)'{-o,--output}'[output format]:format:(text json yaml raw)'
    '--padding[spaces between columns]:padding'
    '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe 'command' commands
    return
  fi

  case "$words[2]" in
    run)
      _arguments -C $store \
        '(-u --url)'{-u,--url}'[report URL]:url' \
        '--product[product]:product' \
        '--channel[channel]:channel' \
        '--release[release]:release' \
        '--timeout[HTTP timeout]:timeout' \
        '--offline[replay the last fetched report]' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml raw)'
      ;;
    history|ls)
      _arguments -C $store $listing
      ;;
    diff)
      _arguments -C $store $listing '--delta[line delta view]' '::from' '::to'
      ;;
    show)
      _arguments -C $store \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml raw)' \
        '(-q --query)'{-q,--query}'[gjson path]:path' \
        '::snapshot'
      ;;
    results)
      _arguments -C $store $listing \
        '(-f --filter)'{-f,--filter}'[filters]:filter' \
        '(-s --sort)'{-s,--sort}'[sort columns]:sort' \
        '(-w --wide)'{-w,--wide}'[location columns]' \
        '::snapshot'
      ;;
    completion)
      _arguments '2: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _testpad testpad
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}

	w := writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print usage
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(errWriter(cmd), "usage: testpad completion [bash|zsh]")
		}
	}
	return nil
}

func completionCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "testpad completion [bash|zsh]",
		Metadata: map[string]any{
			meta.Key: m,
		},
		Action: completionCommandAction,
	}
}
