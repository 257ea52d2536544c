package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/resctl/resctlgo/internal/meta"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `# bash completion for resctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_resctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "cat diff dump fetch info ls preload completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--bundle -b --color -c --output -o --root --sort -s --titles -t --tldr"

    case "$cmd" in
    ls)
      local opts="$common --ext -e"
            ;;
        cat)
      local opts="$common --preload"
            ;;
        dump)
      local opts="$common"
            ;;
        info)
      local opts="$common --query -q"
            ;;
        preload)
      local opts="$common"
            ;;
        fetch)
      local opts="$common --s3-bucket --s3-key --region --profile"
            ;;
        diff)
      local opts="$common"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--root" ]]; then
        COMPREPLY=( $(compgen -o dirnames -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--bundle" || "$prev" == "-b" ]]; then
        COMPREPLY=( $(compgen -o filenames -- "$cur") )
        return 0
    fi

  if [[ "$cur" == -* ]]; then
    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
  fi

  COMPREPLY=( $(compgen -o filenames -- "$cur") )
  return 0
}

complete -F _resctl resctl
`

const zshCompletionScript = `#compdef resctl

_resctl() {
  local -a cmds
  cmds=(
    'cat:print a resource as text'
    'diff:diff the manifests of two bundles'
    'dump:write raw resource bytes to stdout'
    'fetch:fetch a published bundle from S3'
    'info:show resource root and manifest info'
    'ls:list resources'
    'preload:run the preload pass'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-b --bundle)'{-b,--bundle}'[packaged bundle]:bundle:_files'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--root[loose resource tree]:root:_directories'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'resctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    ls)
      _arguments -C \
        $common \
        '(-e --ext)'{-e,--ext}'[dotted extension]:ext' \
        '::subdir:'
      ;;
    cat)
      _arguments -C \
        $common \
        '--preload[run the preload pass first]' \
        '::name:'
      ;;
    dump)
      _arguments -C \
        $common \
        '::name:'
      ;;
    info)
      _arguments -C \
        $common \
        '(-q --query)'{-q,--query}'[gjson manifest path]:path'
      ;;
    fetch)
      _arguments -C \
        $common \
        '--s3-bucket[bucket]:bucket' \
        '--s3-key[object key]:key' \
        '--region[AWS region]:region' \
        '--profile[AWS profile]:profile'
      ;;
    diff)
      _arguments -C \
        $common \
        '1:bundleA:_files' \
        '2:bundleB:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _resctl resctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: resctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "resctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
