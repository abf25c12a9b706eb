package configkeys

const (
	delimiter = "."

	ConfigPrefix = "config"

	ConfigEffectPrefix = ConfigPrefix + delimiter + "effect"

	ConfigEffectLogPrefix = ConfigEffectPrefix + delimiter + "log"

	ConfigEffectLogHandlerPrefix     = ConfigEffectLogPrefix + delimiter + "handler"
	ConfigEffectLogHandlerBufferSize = ConfigEffectLogHandlerPrefix + delimiter + "buffer_size"

	ConfigEffectMemoPrefix = ConfigEffectPrefix + delimiter + "memo"

	ConfigEffectMemoHandlerPrefix     = ConfigEffectMemoPrefix + delimiter + "handler"
	ConfigEffectMemoHandlerBufferSize = ConfigEffectMemoHandlerPrefix + delimiter + "buffer_size"
	ConfigEffectMemoHandlerNumWorkers = ConfigEffectMemoHandlerPrefix + delimiter + "num_workers"
)
