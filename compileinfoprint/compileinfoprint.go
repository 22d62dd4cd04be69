// compileinfoprint is imported by the mapqtl commands for the side effect of
// printing the compileinfo to os.StdErr
package compileinfoprint

import "github.com/carbocation/mapqtl/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
